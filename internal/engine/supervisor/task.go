package supervisor

import (
	"context"
	"fmt"
	"io"

	"go.trai.ch/conductor/internal/core/domain"
)

// RunTaskCommand runs a single command line of task to completion, streaming
// its output as task output. It blocks until the process exits.
func (s *Supervisor) RunTaskCommand(ctx context.Context, task domain.Task, line string) error {
	spec := s.taskSpec(task, line)
	s.deps.Renderer.SystemMessage(spec.Command)

	ctx, vertex := s.deps.Telemetry.Record(ctx, "task "+task.QualifiedName()+": "+spec.Command)

	proc, err := s.deps.Launcher.Launch(ctx, spec)
	if err != nil {
		vertex.Complete(err)
		return err
	}

	out := vertex.Stdout()
	for l := range proc.Lines() {
		_, _ = io.WriteString(out, l+"\n")
		s.deps.Renderer.TaskOutput(task, l)
	}
	<-proc.Done()

	err = proc.Err()
	vertex.Complete(err)
	return err
}

// StartServices starts the services declared by c and renders each outcome.
func (s *Supervisor) StartServices(ctx context.Context, c domain.Component) {
	for svc, err := range s.deps.Services.Start(ctx, s.deps.Services.ForComponent(&s.project, c)) {
		if err != nil {
			s.deps.Renderer.SystemError(fmt.Sprintf("Could not start service [%s]: %v", svc.Name, err))
			continue
		}
		s.deps.Renderer.SystemMessage("Service started " + svc.Name)
	}
}

// StopServices stops the services declared by c and renders each outcome.
func (s *Supervisor) StopServices(ctx context.Context, c domain.Component) {
	for svc, err := range s.deps.Services.Stop(ctx, s.deps.Services.ForComponent(&s.project, c)) {
		if err != nil {
			s.deps.Renderer.SystemError(fmt.Sprintf("Could not stop service [%s]: %v", svc.Name, err))
			continue
		}
		s.deps.Renderer.SystemMessage("Service stopped " + svc.Name)
	}
}

// taskSpec layers process env < project env < owner env < task env. The
// working directory is the task path, else the owner's directory, else the root.
func (s *Supervisor) taskSpec(task domain.Task, line string) domain.ProcessSpec {
	var ownerEnv map[string]string
	dir := task.Path
	if task.Owner != "" {
		if owner, ok := s.project.ComponentByName(task.Owner); ok {
			ownerEnv = owner.Env
			if dir == "" {
				dir = owner.Dir()
			}
		}
	}

	env := domain.ExpandAll(domain.MergeEnv(domain.ProcessEnv(), s.project.Env, ownerEnv, task.Env))
	return domain.ProcessSpec{
		Command: domain.ExpandEnv(line, env),
		Dir:     s.project.Resolve(dir, env),
		Env:     domain.Environ(env),
	}
}
