package domain

// ProcessSpec describes a shell command line ready to be spawned.
type ProcessSpec struct {
	// Command is a single shell command line.
	Command string
	// Dir is the absolute working directory.
	Dir string
	// Env is the complete environment in "KEY=VALUE" form.
	Env []string
}
