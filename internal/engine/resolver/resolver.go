// Package resolver maps run targets onto tasks, component tasks, components
// and groups, and drives them through a Runner.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/conductor/internal/core/domain"
	"go.trai.ch/conductor/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner executes what the resolver decides to run.
// *supervisor.Supervisor implements it.
type Runner interface {
	Spawn(ctx context.Context, component domain.Component, extraEnv map[string]string)
	RunTaskCommand(ctx context.Context, task domain.Task, line string) error
	StartServices(ctx context.Context, component domain.Component)
	StopServices(ctx context.Context, component domain.Component)
	Wait(ctx context.Context)
	Stop()
}

// Resolver resolves target names against one project.
type Resolver struct {
	project  *domain.Project
	runner   Runner
	renderer ports.Renderer
	logger   ports.Logger

	spawned map[string]struct{}
}

// New creates a Resolver.
func New(project *domain.Project, runner Runner, renderer ports.Renderer, logger ports.Logger) *Resolver {
	return &Resolver{
		project:  project,
		runner:   runner,
		renderer: renderer,
		logger:   logger,
		spawned:  make(map[string]struct{}),
	}
}

// Run resolves every name in order. Tasks run to completion on the spot;
// components and groups are spawned and waited for once all names are
// processed. It fails with domain.ErrNothingToRun when no name matched.
// Cancelling ctx stops the run without an error.
func (r *Resolver) Run(ctx context.Context, names []string) error {
	matched := false
	for _, name := range names {
		ok, err := r.resolve(ctx, name, nil)
		if err != nil {
			r.abort(ctx)
			if errors.Is(err, context.Canceled) {
				r.logger.Debug(err.Error())
				return nil
			}
			return err
		}
		if !ok {
			r.logger.Warn(fmt.Sprintf("no task, component or group named %q", name))
			continue
		}
		matched = true
	}

	if !matched {
		err := zerr.Wrap(domain.ErrNothingToRun, "no target matched")
		return zerr.With(err, "targets", strings.Join(names, ", "))
	}

	if len(r.spawned) > 0 {
		r.runner.Wait(ctx)
	}
	return nil
}

// resolve runs the first category matching name: project task, component
// task, component, group. chain holds the tasks currently being resolved.
func (r *Resolver) resolve(ctx context.Context, name string, chain []string) (bool, error) {
	if task, ok := r.project.TaskByName(name); ok {
		return true, r.runTask(ctx, task, chain)
	}

	if component, task, ok := r.project.ComponentTask(name); ok {
		task.Owner = component.Name
		return true, r.runComponentTask(ctx, component, task, chain)
	}

	if component, ok := r.project.ComponentByName(name); ok {
		r.spawn(ctx, component, nil)
		return true, nil
	}

	if group, ok := r.project.GroupByName(name); ok {
		r.runGroup(ctx, group)
		return true, nil
	}

	return false, nil
}

func (r *Resolver) runTask(ctx context.Context, task domain.Task, chain []string) error {
	name := task.QualifiedName()
	if slices.ContainsFunc(chain, func(s string) bool { return strings.EqualFold(s, name) }) {
		err := zerr.Wrap(domain.ErrCircularDependency, "task depends on itself")
		return zerr.With(err, "chain", strings.Join(append(chain, name), " -> "))
	}
	chain = append(slices.Clone(chain), name)

	for _, dep := range task.Dependencies {
		ok, err := r.resolve(ctx, dep, chain)
		if err != nil {
			return err
		}
		if !ok {
			r.logger.Warn(fmt.Sprintf("dependency %q of task %s matched nothing", dep, name))
		}
	}

	for _, line := range task.Commands {
		if err := ctx.Err(); err != nil {
			return zerr.With(zerr.Wrap(err, "task interrupted"), "task", name)
		}
		if err := r.runner.RunTaskCommand(ctx, task, line); err != nil {
			r.renderer.SystemError(fmt.Sprintf("Task %s failed: %v", name, err))
		}
	}
	return nil
}

// runComponentTask holds the owner's services for the duration of the task.
func (r *Resolver) runComponentTask(ctx context.Context, component domain.Component, task domain.Task, chain []string) error {
	r.runner.StartServices(ctx, component)
	defer r.runner.StopServices(ctx, component)

	return r.runTask(ctx, task, chain)
}

func (r *Resolver) runGroup(ctx context.Context, group domain.Group) {
	for _, name := range group.Components {
		component, ok := r.project.ComponentByName(name)
		if !ok {
			r.logger.Warn(fmt.Sprintf("group %s references unknown component %q", group.Name, name))
			continue
		}
		r.spawn(ctx, component, group.Env)
	}
}

// spawn hands component to the runner at most once per run.
func (r *Resolver) spawn(ctx context.Context, component domain.Component, extraEnv map[string]string) {
	key := strings.ToLower(component.Name)
	if _, ok := r.spawned[key]; ok {
		r.logger.Debug("component " + component.Name + " is already running")
		return
	}
	r.spawned[key] = struct{}{}
	r.runner.Spawn(ctx, component, extraEnv)
}

// abort stops whatever was spawned before a resolution error and waits for it.
func (r *Resolver) abort(ctx context.Context) {
	if len(r.spawned) == 0 {
		return
	}
	r.runner.Stop()
	r.runner.Wait(ctx)
}
