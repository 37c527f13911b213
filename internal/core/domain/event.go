package domain

// Event is emitted by a running component. The set of variants is closed:
// OutputEvent, StartEvent, ShutdownEvent, ServiceStartedEvent and ErrorEvent.
// Every event carries a copy of the originating component.
type Event interface {
	Source() Component
	isEvent()
}

// OutputEvent carries one line of merged stdout/stderr output.
type OutputEvent struct {
	Component Component
	Line      string
}

// StartEvent is emitted once the component's process has been spawned.
type StartEvent struct {
	Component Component
}

// ShutdownEvent is emitted when the component's process loop has ended.
type ShutdownEvent struct {
	Component Component
}

// ServiceStartedEvent is emitted for each service started on behalf of the component.
type ServiceStartedEvent struct {
	Component Component
	Service   string
}

// ErrorEvent reports a non-fatal failure for the component.
type ErrorEvent struct {
	Component Component
	Err       error
}

func (e OutputEvent) Source() Component         { return e.Component }
func (e StartEvent) Source() Component          { return e.Component }
func (e ShutdownEvent) Source() Component       { return e.Component }
func (e ServiceStartedEvent) Source() Component { return e.Component }
func (e ErrorEvent) Source() Component          { return e.Component }

func (OutputEvent) isEvent()         {}
func (StartEvent) isEvent()          {}
func (ShutdownEvent) isEvent()       {}
func (ServiceStartedEvent) isEvent() {}
func (ErrorEvent) isEvent()          {}
