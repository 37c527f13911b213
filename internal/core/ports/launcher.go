// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/conductor/internal/core/domain"
)

// Launcher spawns shell command lines as child processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=launcher.go -destination=mocks/mock_launcher.go -package=mocks
type Launcher interface {
	// Launch starts the process described by spec. It returns an error if the
	// process could not be spawned; a non-zero exit is reported through Process.Err.
	Launch(ctx context.Context, spec domain.ProcessSpec) (Process, error)
}

// Process is a running child process with its stdout and stderr merged.
type Process interface {
	// Lines yields decoded output lines in the order they were written.
	// The channel is closed once the output stream ends.
	Lines() <-chan string

	// Done is closed when the process exits.
	Done() <-chan struct{}

	// Err returns the exit error once Done is closed.
	Err() error

	// Kill forcibly terminates the process. Calling it after exit is a no-op.
	Kill() error
}
