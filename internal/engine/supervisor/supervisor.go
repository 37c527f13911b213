// Package supervisor runs components concurrently, multiplexes their events
// into one console stream, relaunches components that ask for it and stops
// their services once everything has finished.
package supervisor

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/conductor/internal/core/domain"
	"go.trai.ch/conductor/internal/core/ports"
	"go.trai.ch/conductor/internal/engine/services"
)

const (
	// DefaultTickInterval bounds how long the event loop blocks without an event.
	DefaultTickInterval = 500 * time.Millisecond

	inboxSize       = 64
	teardownTimeout = 30 * time.Second

	// minRelaunchInterval is the shortest time between two launches of a
	// retrying component.
	minRelaunchInterval = 200 * time.Millisecond
)

// Deps are the collaborators a Supervisor drives.
type Deps struct {
	Launcher  ports.Launcher
	Services  *services.Manager
	Renderer  ports.Renderer
	Telemetry ports.Telemetry
	Logger    ports.Logger
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithTickInterval overrides DefaultTickInterval.
func WithTickInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.tick = d
	}
}

// Supervisor owns the worker registry for one run.
type Supervisor struct {
	project domain.Project
	deps    Deps
	tick    time.Duration

	inbox    chan envelope
	done     chan struct{}
	doneOnce sync.Once
	stopOnce sync.Once
	active   atomic.Bool

	mu      sync.Mutex
	workers map[string]*record
	order   []string
	spawned int
	// used holds every service named by a spawned component, keyed by
	// lowercase name.
	used     map[string]string
	usedKeys []string
}

// record is the registry entry for one worker attempt.
type record struct {
	id        string
	seq       int
	component domain.Component
	extraEnv  map[string]string

	// running is true until the worker has delivered its last event.
	running bool
	// completed is true once no further events or retries are expected.
	completed bool

	kill     chan struct{}
	killOnce sync.Once
}

func (r *record) signalKill() bool {
	sent := false
	r.killOnce.Do(func() {
		close(r.kill)
		sent = true
	})
	return sent
}

// envelope carries a worker event into the shared inbox. A closed envelope
// is the last thing a worker sends.
type envelope struct {
	workerID string
	event    domain.Event
	closed   bool
}

// New creates a Supervisor for a copy of project.
func New(project domain.Project, deps Deps, opts ...Option) *Supervisor {
	s := &Supervisor{
		project: project,
		deps:    deps,
		tick:    DefaultTickInterval,
		inbox:   make(chan envelope, inboxSize),
		done:    make(chan struct{}),
		workers: make(map[string]*record),
		used:    make(map[string]string),
	}
	s.active.Store(true)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Spawn starts the component's services, registers a worker and launches it
// in the background. extraEnv overrides the component env.
func (s *Supervisor) Spawn(ctx context.Context, component domain.Component, extraEnv map[string]string) {
	var pending []domain.Event
	declared := s.deps.Services.ForComponent(&s.project, component)
	for svc, err := range s.deps.Services.Start(ctx, declared) {
		if err != nil {
			pending = append(pending, domain.ErrorEvent{
				Component: component,
				Err:       fmt.Errorf("could not start service [%s]: %w", svc.Name, err),
			})
			continue
		}
		pending = append(pending, domain.ServiceStartedEvent{Component: component, Service: svc.Name})
	}

	rec := &record{
		id:        uuid.New().String(),
		component: component,
		extraEnv:  extraEnv,
		running:   true,
		kill:      make(chan struct{}),
	}

	s.mu.Lock()
	s.spawned++
	rec.seq = s.spawned
	s.workers[rec.id] = rec
	s.order = append(s.order, rec.id)
	for _, name := range component.Services {
		key := strings.ToLower(name)
		if _, ok := s.used[key]; !ok {
			s.used[key] = name
			s.usedKeys = append(s.usedKeys, key)
		}
	}
	if !s.active.Load() {
		rec.completed = true
		rec.signalKill()
	}
	s.mu.Unlock()

	s.deps.Logger.Debug(fmt.Sprintf("starting worker %s for %s", rec.id[:8], component.Name))
	go s.work(context.WithoutCancel(ctx), rec, pending)
}

// Wait runs the event loop until every registered worker has completed, then
// stops the services used by any of them. Cancelling ctx stops the run.
func (s *Supervisor) Wait(ctx context.Context) {
	defer s.doneOnce.Do(func() { close(s.done) })

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	cancelled := ctx.Done()
	for !s.finished() {
		select {
		case env := <-s.inbox:
			s.handle(ctx, env)
		case <-ticker.C:
		case <-cancelled:
			cancelled = nil
			s.deps.Renderer.SystemMessage("Shutting down")
			s.Stop()
		}
	}

	s.teardown(ctx)
}

// Stop prevents further retries and sends a kill signal to every running worker.
func (s *Supervisor) Stop() {
	s.stopOnce.Do(func() {
		s.active.Store(false)

		s.mu.Lock()
		defer s.mu.Unlock()

		for _, id := range s.order {
			rec := s.workers[id]
			rec.completed = true
			if rec.running && rec.signalKill() {
				s.deps.Logger.Debug("sending kill signal to " + rec.component.Name)
			}
		}
	})
}

func (s *Supervisor) finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.workers) == 0 {
		return false
	}
	for _, rec := range s.workers {
		if rec.running || !rec.completed {
			return false
		}
	}
	return true
}

func (s *Supervisor) handle(ctx context.Context, env envelope) {
	s.mu.Lock()
	rec, ok := s.workers[env.workerID]
	s.mu.Unlock()
	if !ok {
		return
	}

	if env.closed {
		s.mu.Lock()
		rec.running = false
		rec.completed = true
		s.mu.Unlock()
		rec.signalKill()
		s.deps.Logger.Debug("worker channel closed for " + rec.component.Name)
		return
	}

	switch e := env.event.(type) {
	case domain.OutputEvent:
		s.deps.Renderer.ComponentOutput(e.Component, e.Line)
	case domain.StartEvent:
		s.deps.Renderer.SystemMessage(fmt.Sprintf("Component started [%d] %s", rec.seq, e.Component.Name))
	case domain.ServiceStartedEvent:
		s.deps.Renderer.SystemMessage("Service started " + e.Service)
	case domain.ErrorEvent:
		s.deps.Renderer.SystemError(fmt.Sprintf("Component error [%s]: %v", e.Component.Name, e.Err))
	case domain.ShutdownEvent:
		s.deps.Renderer.SystemMessage("Component shutdown " + e.Component.Name)
		s.shutdown(ctx, rec)
	}
}

// shutdown decides whether a finished attempt is relaunched. The replacement
// is registered before the old record is removed from the registry.
func (s *Supervisor) shutdown(ctx context.Context, rec *record) {
	s.mu.Lock()
	retry := rec.component.Retry && !rec.completed && s.active.Load() && ctx.Err() == nil
	if !retry {
		rec.completed = true
	}
	s.mu.Unlock()

	if !retry {
		s.deps.Logger.Debug("component " + rec.component.Name + " has completed")
		return
	}

	s.deps.Logger.Debug("component " + rec.component.Name + " has retry enabled")
	s.Spawn(ctx, rec.component, rec.extraEnv)

	s.mu.Lock()
	defer s.mu.Unlock()
	rec.completed = true
	delete(s.workers, rec.id)
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == rec.id })
}

// send delivers env to the event loop, or drops it once the loop has returned.
func (s *Supervisor) send(env envelope) {
	select {
	case s.inbox <- env:
	case <-s.done:
	}
}

// teardown stops the services of every component that ever ran, once per name.
func (s *Supervisor) teardown(ctx context.Context) {
	s.mu.Lock()
	names := make([]string, 0, len(s.usedKeys))
	for _, key := range s.usedKeys {
		names = append(names, s.used[key])
	}
	s.mu.Unlock()

	var used []domain.Service
	for _, name := range names {
		if svc, ok := s.project.ServiceByName(name); ok {
			used = append(used, svc)
		}
	}
	if len(used) == 0 {
		return
	}

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), teardownTimeout)
	defer cancel()

	s.deps.Services.StopAll(stopCtx, used, func(svc domain.Service, err error) {
		if err != nil {
			s.deps.Logger.Warn(fmt.Sprintf("could not stop service %s: %v", svc.Name, err))
			s.deps.Renderer.SystemError(fmt.Sprintf("Could not stop service [%s]: %v", svc.Name, err))
			return
		}
		s.deps.Renderer.SystemMessage("Service stopped " + svc.Name)
	})
}
