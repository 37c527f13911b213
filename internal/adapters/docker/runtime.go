// Package docker starts and stops service containers through the Docker Engine API.
package docker

import (
	"context"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"go.trai.ch/conductor/internal/core/domain"
	"go.trai.ch/conductor/internal/core/ports"
	"go.trai.ch/zerr"
)

const pingTimeout = 2 * time.Second

// engine is the subset of the Docker client used by Runtime.
type engine interface {
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
}

// Runtime implements ports.ContainerRuntime using a Docker Engine client.
type Runtime struct {
	engine engine
}

// NewRuntime wraps an engine client.
func NewRuntime(e engine) *Runtime {
	return &Runtime{engine: e}
}

// StartContainer starts the named container. The engine treats an already
// running container as success.
func (r *Runtime) StartContainer(ctx context.Context, name string) error {
	if err := r.engine.ContainerStart(ctx, name, container.StartOptions{}); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start container"), "container", name)
	}
	return nil
}

// StopContainer stops the named container. Stopping a stopped container is not an error.
func (r *Runtime) StopContainer(ctx context.Context, name string) error {
	if err := r.engine.ContainerStop(ctx, name, container.StopOptions{}); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stop container"), "container", name)
	}
	return nil
}

// Unsupported is selected when no container engine is reachable.
// Every call fails with domain.ErrServicesUnsupported.
type Unsupported struct {
	reason error
}

// NewUnsupported creates an Unsupported runtime recording why the engine is unavailable.
func NewUnsupported(reason error) *Unsupported {
	return &Unsupported{reason: reason}
}

// StartContainer always fails.
func (u *Unsupported) StartContainer(_ context.Context, name string) error {
	return u.fail(name)
}

// StopContainer always fails.
func (u *Unsupported) StopContainer(_ context.Context, name string) error {
	return u.fail(name)
}

func (u *Unsupported) fail(name string) error {
	err := zerr.Wrap(domain.ErrServicesUnsupported, "container engine unavailable")
	if u.reason != nil {
		err = zerr.With(err, "reason", u.reason.Error())
	}
	return zerr.With(err, "container", name)
}

// Detect connects to the engine configured by the environment (DOCKER_HOST
// and friends) and falls back to Unsupported when it does not answer.
func Detect(ctx context.Context, logger ports.Logger) ports.ContainerRuntime {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		logger.Debug("container engine client unavailable: " + err.Error())
		return NewUnsupported(err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := cli.Ping(pingCtx); err != nil {
		logger.Debug("container engine not reachable: " + err.Error())
		_ = cli.Close()
		return NewUnsupported(err)
	}

	return NewRuntime(cli)
}
