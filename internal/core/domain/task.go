package domain

// Task is a named, ordered list of one-shot shell commands with optional
// dependencies on other tasks.
type Task struct {
	Name        string
	Description string
	// Dependencies are resolved exactly like command-line targets, in order.
	Dependencies []string
	// Path overrides the working directory, relative to the project root.
	Path     string
	Commands []string
	Env      map[string]string
	// Owner is the name of the component that declares the task.
	// It is empty for project-level tasks.
	Owner string
}

// QualifiedName returns "component:task" for component-scoped tasks and the
// bare name otherwise.
func (t Task) QualifiedName() string {
	if t.Owner == "" {
		return t.Name
	}
	return t.Owner + ":" + t.Name
}
