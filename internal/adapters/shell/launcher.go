// Package shell launches command lines through the platform shell and streams
// their merged output line by line.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/conductor/internal/core/domain"
	"go.trai.ch/conductor/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultReadTimeout bounds every read from the output pipe so the reader can
// notice a kill while the child is silent.
const DefaultReadTimeout = 500 * time.Millisecond

const readBufferSize = 4096

// Launcher implements ports.Launcher using os/exec.
type Launcher struct {
	logger      ports.Logger
	readTimeout time.Duration
}

// NewLauncher creates a new Launcher.
func NewLauncher(logger ports.Logger) *Launcher {
	return &Launcher{
		logger:      logger,
		readTimeout: DefaultReadTimeout,
	}
}

// Launch starts spec.Command through the shell with stdout and stderr
// attached to the same pipe.
func (l *Launcher) Launch(ctx context.Context, spec domain.ProcessSpec) (ports.Process, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create output pipe")
	}

	name, args := shellCommand(spec.Command)
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // commands come from the project config
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdout = w
	cmd.Stderr = w
	configure(cmd)

	p := &process{
		cmd:         cmd,
		logger:      l.logger,
		readTimeout: l.readTimeout,
		lines:       make(chan string),
		done:        make(chan struct{}),
	}
	cmd.Cancel = p.Kill

	if err := cmd.Start(); err != nil {
		_ = r.Close()
		_ = w.Close()
		err = zerr.With(zerr.Wrap(err, "failed to start process"), "command", spec.Command)
		return nil, zerr.With(err, "dir", spec.Dir)
	}

	// The child holds its own copy of the write end. Closing ours lets the
	// reader see EOF once every process in the tree has exited.
	_ = w.Close()

	go p.read(r)
	go p.wait()

	return p, nil
}

type process struct {
	cmd         *exec.Cmd
	logger      ports.Logger
	readTimeout time.Duration

	lines chan string
	done  chan struct{}
	err   error

	killed   atomic.Bool
	killOnce sync.Once
	killErr  error
}

func (p *process) Lines() <-chan string { return p.lines }

func (p *process) Done() <-chan struct{} { return p.done }

func (p *process) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Kill terminates the process tree once. Later calls return the first result.
func (p *process) Kill() error {
	p.killOnce.Do(func() {
		p.killed.Store(true)
		p.killErr = killTree(p.cmd)
	})
	return p.killErr
}

func (p *process) wait() {
	err := p.cmd.Wait()
	if err != nil && !p.killed.Load() {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = zerr.With(zerr.Wrap(err, "process exited with failure"), "exit_code", exitErr.ExitCode())
		}
	}
	p.err = err
	close(p.done)
}

func (p *process) read(r *os.File) {
	defer close(p.lines)
	defer func() { _ = r.Close() }()

	deadlines := r.SetReadDeadline(time.Time{}) == nil

	buf := make([]byte, readBufferSize)
	var pending []byte

	for {
		if deadlines {
			_ = r.SetReadDeadline(time.Now().Add(p.readTimeout))
		}

		n, err := r.Read(buf)
		if n > 0 {
			pending = p.emit(append(pending, buf[:n]...))
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, os.ErrClosed):
			p.flush(pending)
			return
		case errors.Is(err, os.ErrDeadlineExceeded):
			if p.killed.Load() {
				p.flush(pending)
				return
			}
		default:
			p.logger.Debug("transient read error on process output: " + err.Error())
			time.Sleep(p.readTimeout)
		}
	}
}

// emit sends every complete line in data and returns the unterminated rest.
func (p *process) emit(data []byte) []byte {
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			return data
		}
		p.lines <- decodeLine(data[:i])
		data = data[i+1:]
	}
}

func (p *process) flush(pending []byte) {
	if len(pending) > 0 {
		p.lines <- decodeLine(pending)
	}
}

func decodeLine(b []byte) string {
	return strings.ToValidUTF8(strings.TrimSuffix(string(b), "\r"), "�")
}
