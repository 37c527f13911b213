package supervisor_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/conductor/internal/core/domain"
	"go.trai.ch/conductor/internal/core/ports"
)

var errKilled = errors.New("signal: killed")

// behavior scripts one launched process.
type behavior struct {
	lines []string
	// exitAfter is how long the process runs after printing. A negative
	// value keeps it running until killed.
	exitAfter time.Duration
	exitErr   error
}

func runsUntilKilled(lines ...string) behavior {
	return behavior{lines: lines, exitAfter: -1}
}

func exitsAfter(d time.Duration, lines ...string) behavior {
	return behavior{lines: lines, exitAfter: d}
}

type fakeProcess struct {
	lines    chan string
	done     chan struct{}
	killed   chan struct{}
	kills    atomic.Int32
	killOnce sync.Once
	doneOnce sync.Once
	err      error
}

func (p *fakeProcess) Lines() <-chan string { return p.lines }

func (p *fakeProcess) Done() <-chan struct{} { return p.done }

func (p *fakeProcess) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

func (p *fakeProcess) Kill() error {
	p.kills.Add(1)
	p.killOnce.Do(func() { close(p.killed) })
	p.exit(errKilled)
	return nil
}

func (p *fakeProcess) exit(err error) {
	p.doneOnce.Do(func() {
		p.err = err
		close(p.done)
	})
}

func (p *fakeProcess) run(b behavior) {
	defer close(p.lines)
	for _, line := range b.lines {
		select {
		case p.lines <- line:
		case <-p.killed:
			return
		}
	}
	if b.exitAfter < 0 {
		<-p.killed
		return
	}
	select {
	case <-time.After(b.exitAfter):
		p.exit(b.exitErr)
	case <-p.killed:
	}
}

type launch struct {
	spec domain.ProcessSpec
	at   time.Time
	proc *fakeProcess
}

// fakeLauncher hands out scripted processes. script receives the command and
// how many times it has been launched before.
type fakeLauncher struct {
	mu       sync.Mutex
	launches []launch
	script   func(command string, attempt int) (behavior, error)
}

func (l *fakeLauncher) Launch(_ context.Context, spec domain.ProcessSpec) (ports.Process, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	attempt := 0
	for _, prev := range l.launches {
		if prev.spec.Command == spec.Command {
			attempt++
		}
	}

	b, err := l.script(spec.Command, attempt)
	if err != nil {
		return nil, err
	}

	p := &fakeProcess{
		lines:  make(chan string),
		done:   make(chan struct{}),
		killed: make(chan struct{}),
	}
	l.launches = append(l.launches, launch{spec: spec, at: time.Now(), proc: p})
	go p.run(b)
	return p, nil
}

func (l *fakeLauncher) all() []launch {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.launches)
}

func (l *fakeLauncher) count(command string) int {
	n := 0
	for _, launch := range l.all() {
		if launch.spec.Command == command {
			n++
		}
	}
	return n
}

// recordingRenderer keeps every rendered line in order.
type recordingRenderer struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingRenderer) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, s)
}

func (r *recordingRenderer) ComponentOutput(c domain.Component, line string) {
	r.add(fmt.Sprintf("[%s] %s", c.Name, line))
}

func (r *recordingRenderer) TaskOutput(t domain.Task, line string) {
	r.add(fmt.Sprintf("task[%s] %s", t.Name, line))
}

func (r *recordingRenderer) SystemMessage(msg string) { r.add("msg: " + msg) }

func (r *recordingRenderer) SystemError(msg string) { r.add("err: " + msg) }

func (r *recordingRenderer) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.lines)
}

func (r *recordingRenderer) count(line string) int {
	n := 0
	for _, l := range r.all() {
		if l == line {
			n++
		}
	}
	return n
}

func (r *recordingRenderer) index(line string) int {
	return slices.Index(r.all(), line)
}
