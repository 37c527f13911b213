package config

import (
	"gopkg.in/yaml.v3"
)

// ProjectFile represents the structure of the conductor.yml configuration file.
type ProjectFile struct {
	Name       string            `yaml:"name"`
	Components []ComponentDTO    `yaml:"components"`
	Groups     []GroupDTO        `yaml:"groups"`
	Services   []ServiceDTO      `yaml:"services"`
	Tasks      []TaskDTO         `yaml:"tasks"`
	Env        map[string]string `yaml:"env"`
}

// ComponentDTO represents a component definition in the configuration.
type ComponentDTO struct {
	Name      string            `yaml:"name"`
	Path      string            `yaml:"path"`
	Color     string            `yaml:"color"`
	Env       map[string]string `yaml:"env"`
	Tasks     []TaskDTO         `yaml:"tasks"`
	Repo      string            `yaml:"repo"`
	Delay     uint              `yaml:"delay"`
	Start     string            `yaml:"start"`
	Init      Commands          `yaml:"init"`
	Tags      []string          `yaml:"tags"`
	Retry     bool              `yaml:"retry"`
	KeepAlive bool              `yaml:"keep_alive"`
	Default   *bool             `yaml:"default"`
	Services  []string          `yaml:"services"`
}

// TaskDTO represents a task definition in the configuration.
type TaskDTO struct {
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description"`
	Dependencies []string          `yaml:"dependencies"`
	Path         string            `yaml:"path"`
	Commands     Commands          `yaml:"commands"`
	Env          map[string]string `yaml:"env"`
}

// GroupDTO represents a group definition in the configuration.
type GroupDTO struct {
	Name       string            `yaml:"name"`
	Components []string          `yaml:"components"`
	Env        map[string]string `yaml:"env"`
}

// ServiceDTO represents a service definition in the configuration.
type ServiceDTO struct {
	Name        string `yaml:"name"`
	ServiceType string `yaml:"service_type"`
	Container   string `yaml:"container"`
}

// Commands is a list of shell command lines that may also be written as a single string.
type Commands []string

// UnmarshalYAML accepts either a scalar or a sequence of scalars.
func (c *Commands) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var line string
		if err := value.Decode(&line); err != nil {
			return err
		}
		*c = Commands{line}
		return nil
	}

	var lines []string
	if err := value.Decode(&lines); err != nil {
		return err
	}
	*c = lines
	return nil
}
