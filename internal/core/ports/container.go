package ports

import "context"

// ContainerRuntime starts and stops externally managed containers by name.
// Starting a running container or stopping a stopped one is not an error.
//
//go:generate go run go.uber.org/mock/mockgen -source=container.go -destination=mocks/mock_container.go -package=mocks
type ContainerRuntime interface {
	StartContainer(ctx context.Context, name string) error
	StopContainer(ctx context.Context, name string) error
}
