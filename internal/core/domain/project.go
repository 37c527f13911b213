// Package domain contains the core domain models of a conductor project.
package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// DefaultProjectName is used when the config does not name the project.
const DefaultProjectName = "Unnamed Project"

// Project is the root aggregate loaded from the config file.
// It is treated as read-only once a run starts and is passed by value.
type Project struct {
	Name       string
	Components []Component
	Groups     []Group
	Services   []Service
	Tasks      []Task
	Env        map[string]string
	// RootPath is the directory containing the config file.
	// Every relative component or task path is resolved against it.
	RootPath string
}

// Component is an independently runnable unit of the project.
type Component struct {
	Name     string
	Path     string
	Color    Color
	Env      map[string]string
	Start    string
	Init     []string
	Tasks    []Task
	Services []string
	Tags     []string
	Repo     string
	// Delay is the number of seconds to wait before every launch attempt.
	Delay     uint
	Retry     bool
	KeepAlive bool
	Default   bool
}

// Group is a named set of components run together with a shared env overlay.
type Group struct {
	Name       string
	Components []string
	Env        map[string]string
}

// Dir returns the component directory relative to the project root.
func (c Component) Dir() string {
	if c.Path != "" {
		return c.Path
	}
	return c.Name
}

// HasTag reports whether the component carries any of the given tags.
func (c Component) HasTag(tags []string) bool {
	for _, tag := range c.Tags {
		if slices.Contains(tags, tag) {
			return true
		}
	}
	return false
}

// InitTask describes the component's init sequence as a task so it runs
// through the same blocking path as any other task.
func (c Component) InitTask() Task {
	return Task{
		Name:     c.Name,
		Owner:    c.Name,
		Commands: c.Init,
	}
}

// Task returns the component-scoped task with the given name.
func (c Component) Task(name string) (Task, bool) {
	for _, t := range c.Tasks {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Task{}, false
}

// ComponentByName looks up a component case-insensitively. The first match wins.
func (p *Project) ComponentByName(name string) (Component, bool) {
	for _, c := range p.Components {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Component{}, false
}

// GroupByName looks up a group case-insensitively. The first match wins.
func (p *Project) GroupByName(name string) (Group, bool) {
	for _, g := range p.Groups {
		if strings.EqualFold(g.Name, name) {
			return g, true
		}
	}
	return Group{}, false
}

// TaskByName looks up a project-level task case-insensitively. The first match wins.
func (p *Project) TaskByName(name string) (Task, bool) {
	for _, t := range p.Tasks {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Task{}, false
}

// ComponentTask resolves a "component:task" name case-insensitively.
// It returns the owning component along with the task.
func (p *Project) ComponentTask(qualified string) (Component, Task, bool) {
	for _, c := range p.Components {
		for _, t := range c.Tasks {
			if strings.EqualFold(c.Name+":"+t.Name, qualified) {
				return c, t, true
			}
		}
	}
	return Component{}, Task{}, false
}

// ServiceByName looks up a service case-insensitively. The first match wins.
func (p *Project) ServiceByName(name string) (Service, bool) {
	for _, s := range p.Services {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Service{}, false
}

// ComponentNames returns the names of all components in declaration order.
func (p *Project) ComponentNames() []string {
	names := make([]string, 0, len(p.Components))
	for _, c := range p.Components {
		names = append(names, c.Name)
	}
	return names
}

// FilterByTags returns a copy of the project keeping only components that carry
// one of the tags. An empty tag list keeps every component.
func (p Project) FilterByTags(tags []string) Project {
	if len(tags) == 0 {
		return p
	}
	return p.filter(func(c Component) bool { return c.HasTag(tags) })
}

// FilterDefault returns a copy of the project keeping only default components.
func (p Project) FilterDefault() Project {
	return p.filter(func(c Component) bool { return c.Default })
}

func (p Project) filter(keep func(Component) bool) Project {
	kept := make([]Component, 0, len(p.Components))
	for _, c := range p.Components {
		if keep(c) {
			kept = append(kept, c)
		}
	}
	p.Components = kept
	return p
}

// Resolve joins a relative path onto the project root after env expansion.
// Absolute paths are returned as-is.
func (p *Project) Resolve(path string, env map[string]string) string {
	path = ExpandEnv(path, env)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.RootPath, path)
}

// ComponentDir returns the absolute working directory of c.
func (p *Project) ComponentDir(c Component, env map[string]string) string {
	return p.Resolve(c.Dir(), env)
}
