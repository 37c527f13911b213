package ports

import "go.trai.ch/conductor/internal/core/domain"

// Renderer writes the multiplexed console stream.
// Implementations must be safe for concurrent use.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// ComponentOutput prints a line tagged with the component's name and color.
	ComponentOutput(component domain.Component, line string)

	// TaskOutput prints a line produced by a task command.
	TaskOutput(task domain.Task, line string)

	// SystemMessage prints an informational line from conductor itself.
	SystemMessage(msg string)

	// SystemError prints a warning or error line from conductor itself.
	SystemError(msg string)
}
