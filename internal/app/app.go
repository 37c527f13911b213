// Package app implements the application layer for conductor.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.trai.ch/conductor/internal/core/domain"
	"go.trai.ch/conductor/internal/core/ports"
	"go.trai.ch/conductor/internal/engine/resolver"
	"go.trai.ch/conductor/internal/engine/supervisor"
	"go.trai.ch/zerr"
)

// App loads a project and drives it through the resolver and supervisor.
type App struct {
	configLoader ports.ConfigLoader
	cloner       ports.RepoCloner
	deps         supervisor.Deps
	supervisor   []supervisor.Option
	workDir      string

	// projects caches loaded configs by path for the lifetime of the process.
	projects map[string]*domain.Project
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, cloner ports.RepoCloner, deps supervisor.Deps) *App {
	return &App{
		configLoader: loader,
		cloner:       cloner,
		deps:         deps,
		projects:     make(map[string]*domain.Project),
	}
}

// WithSupervisorOptions passes options to every supervisor the App creates.
func (a *App) WithSupervisorOptions(opts ...supervisor.Option) *App {
	a.supervisor = append(a.supervisor, opts...)
	return a
}

// WithWorkDir sets the directory config discovery starts from.
// It defaults to the process working directory.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	ConfigFile string
	Tags       []string
}

// SetupOptions configuration for the Setup method.
type SetupOptions struct {
	ConfigFile string
	Tags       []string
}

// Run resolves the targets against the project and runs them until they
// finish or ctx is cancelled. Without targets every default component runs,
// or every tagged component when tags are given.
func (a *App) Run(ctx context.Context, targetNames []string, opts RunOptions) error {
	project, err := a.load(opts.ConfigFile)
	if err != nil {
		return err
	}

	filtered := project.FilterByTags(opts.Tags)
	if len(targetNames) == 0 {
		if len(opts.Tags) == 0 {
			filtered = filtered.FilterDefault()
		}
		targetNames = filtered.ComponentNames()
	}

	sup := supervisor.New(filtered, a.deps, a.supervisor...)
	res := resolver.New(&filtered, sup, a.deps.Renderer, a.deps.Logger)

	if err := res.Run(ctx, targetNames); err != nil {
		return zerr.Wrap(err, "run failed")
	}
	return nil
}

// Setup clones the repository of every selected component that declares one
// and then runs its init commands in order. Cancelling ctx skips the rest
// without an error.
func (a *App) Setup(ctx context.Context, opts SetupOptions) error {
	project, err := a.load(opts.ConfigFile)
	if err != nil {
		return err
	}

	filtered := project.FilterByTags(opts.Tags)
	sup := supervisor.New(filtered, a.deps, a.supervisor...)
	env := domain.MergeEnv(domain.ProcessEnv(), filtered.Env)

	for _, c := range filtered.Components {
		if ctx.Err() != nil {
			break
		}

		if c.Repo != "" {
			a.clone(ctx, &filtered, c, env)
		}

		init := c.InitTask()
		for _, line := range init.Commands {
			if ctx.Err() != nil {
				break
			}
			if err := sup.RunTaskCommand(ctx, init, line); err != nil {
				a.deps.Renderer.SystemError(fmt.Sprintf("Init of %s failed: %v", c.Name, err))
			}
		}
	}

	if err := ctx.Err(); err != nil {
		a.deps.Logger.Debug("setup interrupted: " + err.Error())
	}
	return nil
}

func (a *App) clone(ctx context.Context, project *domain.Project, c domain.Component, env map[string]string) {
	dir := project.ComponentDir(c, domain.MergeEnv(env, c.Env))

	err := a.cloner.Clone(ctx, c.Repo, dir)
	switch {
	case err == nil:
		a.deps.Renderer.SystemMessage(c.Name + " cloned")
	case errors.Is(err, domain.ErrDirectoryExists):
		a.deps.Renderer.SystemMessage("Skipping clone: " + c.Name + " already exists")
	default:
		a.deps.Renderer.SystemError(fmt.Sprintf("Skipping clone: %v", err))
		a.deps.Logger.Debug(fmt.Sprintf("clone of %s into %s failed: %v", c.Repo, dir, err))
	}
}

// Targets lists everything that can be passed to Run, grouped by kind.
// It is used to build one subcommand per target.
func (a *App) Targets(configFile string) (Targets, error) {
	project, err := a.load(configFile)
	if err != nil {
		return Targets{}, err
	}

	var t Targets
	for _, c := range project.Components {
		t.Components = append(t.Components, c.Name)
		for _, task := range c.Tasks {
			task.Owner = c.Name
			t.Tasks = append(t.Tasks, task)
		}
	}
	for _, g := range project.Groups {
		t.Groups = append(t.Groups, g.Name)
	}
	t.Tasks = append(t.Tasks, project.Tasks...)
	return t, nil
}

// Targets are the runnable names of a project.
type Targets struct {
	Components []string
	Groups     []string
	// Tasks holds component tasks with Owner set, followed by project tasks.
	Tasks []domain.Task
}

// SetLogLevel adjusts the logger level when the logger supports it.
func (a *App) SetLogLevel(level slog.Level) {
	if l, ok := a.deps.Logger.(interface{ SetLevel(slog.Level) }); ok {
		l.SetLevel(level)
	}
}

// Close flushes telemetry.
func (a *App) Close() error {
	if a.deps.Telemetry == nil {
		return nil
	}
	return a.deps.Telemetry.Close()
}

func (a *App) load(configFile string) (*domain.Project, error) {
	cwd := a.workDir
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		cwd = wd
	}

	path, err := a.configLoader.Find(cwd, configFile)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to locate configuration")
	}

	if project, ok := a.projects[path]; ok {
		return project, nil
	}

	project, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	a.projects[path] = project
	return project, nil
}
