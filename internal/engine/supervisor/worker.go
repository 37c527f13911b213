package supervisor

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.trai.ch/conductor/internal/core/domain"
)

// work runs one attempt of a component and reports it through the inbox.
func (s *Supervisor) work(ctx context.Context, rec *record, pending []domain.Event) {
	c := rec.component
	emit := func(e domain.Event) {
		s.send(envelope{workerID: rec.id, event: e})
	}
	defer s.send(envelope{workerID: rec.id, closed: true})

	for _, e := range pending {
		emit(e)
	}

	if !waitDelay(rec) {
		emit(domain.ShutdownEvent{Component: c})
		return
	}

	spec := s.componentSpec(c, rec.extraEnv)
	proc, err := s.deps.Launcher.Launch(ctx, spec)
	if err != nil {
		// A component that cannot be launched is not retried.
		s.mu.Lock()
		rec.completed = true
		s.mu.Unlock()
		emit(domain.ErrorEvent{Component: c, Err: err})
		emit(domain.ShutdownEvent{Component: c})
		return
	}
	launched := time.Now()
	emit(domain.StartEvent{Component: c})

	_, vertex := s.deps.Telemetry.Record(ctx, "component "+c.Name)

	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		out := vertex.Stdout()
		for line := range proc.Lines() {
			_, _ = io.WriteString(out, line+"\n")
			emit(domain.OutputEvent{Component: c, Line: line})
		}
	}()

	exited := proc.Done()
	if c.KeepAlive {
		// Only a kill ends a keep-alive component.
		exited = nil
	}

	select {
	case <-exited:
		s.deps.Logger.Debug("component " + c.Name + " has exited")
	case <-rec.kill:
		s.deps.Logger.Debug("killing process for " + c.Name)
	}

	if err := proc.Kill(); err != nil {
		s.deps.Logger.Debug(fmt.Sprintf("kill %s: %v", c.Name, err))
	}
	<-forwarded
	<-proc.Done()
	vertex.Complete(proc.Err())

	if c.Retry {
		pause(rec, minRelaunchInterval-time.Since(launched))
	}
	emit(domain.ShutdownEvent{Component: c})
}

// waitDelay sleeps for the component delay. It returns false when the worker
// was killed before or during the wait.
func waitDelay(rec *record) bool {
	return pause(rec, time.Duration(rec.component.Delay)*time.Second)
}

// pause waits for d unless the worker is killed first.
func pause(rec *record, d time.Duration) bool {
	select {
	case <-rec.kill:
		return false
	default:
	}

	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-rec.kill:
		return false
	}
}

// componentSpec layers process env < project env < component env < extraEnv,
// expands every value and resolves the working directory against the root.
func (s *Supervisor) componentSpec(c domain.Component, extraEnv map[string]string) domain.ProcessSpec {
	env := domain.ExpandAll(domain.MergeEnv(domain.ProcessEnv(), s.project.Env, c.Env, extraEnv))
	return domain.ProcessSpec{
		Command: domain.ExpandEnv(c.Start, env),
		Dir:     s.project.ComponentDir(c, env),
		Env:     domain.Environ(env),
	}
}
