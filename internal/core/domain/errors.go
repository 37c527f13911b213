package domain

import "go.trai.ch/zerr"

var (
	// ErrNothingToRun is returned when none of the requested names matched a task, component or group.
	ErrNothingToRun = zerr.New("nothing to run")

	// ErrCircularDependency is returned when a task's dependency chain leads back to itself.
	ErrCircularDependency = zerr.New("circular dependency")

	// ErrConfigNotFound is returned when no config file exists in the working directory or its parents.
	ErrConfigNotFound = zerr.New("config file not found")

	// ErrMissingName is returned when a component, group, task or service is declared without a name.
	ErrMissingName = zerr.New("missing name")

	// ErrInvalidColor is returned when a component declares a color outside the supported set.
	ErrInvalidColor = zerr.New("invalid color")

	// ErrInvalidServiceType is returned when a service declares an unknown service_type.
	ErrInvalidServiceType = zerr.New("invalid service type")

	// ErrDirectoryExists is returned when a clone target directory is already present.
	ErrDirectoryExists = zerr.New("directory already exists")

	// ErrServicesUnsupported is returned by the container runtime when no daemon is reachable.
	ErrServicesUnsupported = zerr.New("services are not supported on this host")
)
