// Package services starts and stops the container-backed services components depend on.
package services

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"sync"

	"go.trai.ch/conductor/internal/core/domain"
	"go.trai.ch/conductor/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Manager drives a ContainerRuntime for project services.
// Start and stop failures are reported per service and never abort a batch.
type Manager struct {
	runtime ports.ContainerRuntime
	logger  ports.Logger
}

// NewManager creates a new Manager.
func NewManager(runtime ports.ContainerRuntime, logger ports.Logger) *Manager {
	return &Manager{runtime: runtime, logger: logger}
}

// ForComponent resolves the services declared by c. Unknown names are
// skipped with a warning.
func (m *Manager) ForComponent(project *domain.Project, c domain.Component) []domain.Service {
	services := make([]domain.Service, 0, len(c.Services))
	for _, name := range c.Services {
		service, ok := project.ServiceByName(name)
		if !ok {
			m.logger.Warn(fmt.Sprintf("component %s references unknown service %q", c.Name, name))
			continue
		}
		services = append(services, service)
	}
	return services
}

// Start lazily starts each service as the sequence is consumed.
func (m *Manager) Start(ctx context.Context, services []domain.Service) iter.Seq2[domain.Service, error] {
	return m.each(ctx, services, m.runtime.StartContainer)
}

// Stop lazily stops each service as the sequence is consumed.
func (m *Manager) Stop(ctx context.Context, services []domain.Service) iter.Seq2[domain.Service, error] {
	return m.each(ctx, services, m.runtime.StopContainer)
}

func (m *Manager) each(
	ctx context.Context,
	services []domain.Service,
	op func(context.Context, string) error,
) iter.Seq2[domain.Service, error] {
	return func(yield func(domain.Service, error) bool) {
		for _, s := range services {
			if !yield(s, op(ctx, s.ContainerName())) {
				return
			}
		}
	}
}

// StopAll stops every service concurrently, exactly once per
// case-insensitive name, and calls report with each outcome.
func (m *Manager) StopAll(ctx context.Context, services []domain.Service, report func(domain.Service, error)) {
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, s := range Unique(services) {
		g.Go(func() error {
			err := m.runtime.StopContainer(gctx, s.ContainerName())
			mu.Lock()
			defer mu.Unlock()
			report(s, err)
			return nil
		})
	}

	_ = g.Wait()
}

// Unique drops services whose name repeats an earlier one, ignoring case.
func Unique(services []domain.Service) []domain.Service {
	seen := make(map[string]struct{}, len(services))
	out := make([]domain.Service, 0, len(services))
	for _, s := range services {
		key := strings.ToLower(s.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
