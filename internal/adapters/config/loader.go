// Package config provides the configuration loader for conductor.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/conductor/internal/core/domain"
	"go.trai.ch/conductor/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up when none is given.
const DefaultFileName = "conductor.yml"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Find walks from cwd up to the filesystem root looking for filename.
// An absolute filename is only checked for existence.
func (l *Loader) Find(cwd, filename string) (string, error) {
	if filename == "" {
		filename = DefaultFileName
	}

	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "config file not accessible"), "path", filename)
		}
		return filename, nil
	}

	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	err := zerr.Wrap(domain.ErrConfigNotFound, "no config file in directory tree")
	err = zerr.With(err, "file", filename)
	return "", zerr.With(err, "cwd", cwd)
}

// Load reads the config file at path and maps it onto a domain.Project.
func (l *Loader) Load(path string) (*domain.Project, error) {
	var file ProjectFile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve config path")
	}

	project := &domain.Project{
		Name:     file.Name,
		Env:      file.Env,
		RootPath: filepath.Dir(absPath),
	}
	if project.Name == "" {
		project.Name = domain.DefaultProjectName
	}

	for i := range file.Components {
		component, err := buildComponent(&file.Components[i])
		if err != nil {
			return nil, zerr.With(err, "component_index", i)
		}
		project.Components = append(project.Components, component)
	}

	for i, dto := range file.Groups {
		if dto.Name == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrMissingName, "group without a name"), "group_index", i)
		}
		project.Groups = append(project.Groups, domain.Group{
			Name:       dto.Name,
			Components: dto.Components,
			Env:        dto.Env,
		})
	}

	for i, dto := range file.Services {
		service, err := buildService(dto)
		if err != nil {
			return nil, zerr.With(err, "service_index", i)
		}
		project.Services = append(project.Services, service)
	}

	for i := range file.Tasks {
		task, err := buildTask(&file.Tasks[i], "")
		if err != nil {
			return nil, zerr.With(err, "task_index", i)
		}
		project.Tasks = append(project.Tasks, task)
	}

	l.warnDuplicates(project)

	return project, nil
}

func buildComponent(dto *ComponentDTO) (domain.Component, error) {
	if dto.Name == "" {
		return domain.Component{}, zerr.Wrap(domain.ErrMissingName, "component without a name")
	}

	color, err := domain.ParseColor(dto.Color)
	if err != nil {
		return domain.Component{}, zerr.With(err, "component", dto.Name)
	}

	component := domain.Component{
		Name:      dto.Name,
		Path:      dto.Path,
		Color:     color,
		Env:       dto.Env,
		Start:     dto.Start,
		Init:      dto.Init,
		Services:  dto.Services,
		Tags:      dto.Tags,
		Repo:      dto.Repo,
		Delay:     dto.Delay,
		Retry:     dto.Retry,
		KeepAlive: dto.KeepAlive,
		Default:   dto.Default == nil || *dto.Default,
	}

	for i := range dto.Tasks {
		task, err := buildTask(&dto.Tasks[i], dto.Name)
		if err != nil {
			return domain.Component{}, zerr.With(err, "component", dto.Name)
		}
		component.Tasks = append(component.Tasks, task)
	}

	return component, nil
}

func buildTask(dto *TaskDTO, owner string) (domain.Task, error) {
	if dto.Name == "" {
		return domain.Task{}, zerr.Wrap(domain.ErrMissingName, "task without a name")
	}
	return domain.Task{
		Name:         dto.Name,
		Description:  dto.Description,
		Dependencies: dto.Dependencies,
		Path:         dto.Path,
		Commands:     dto.Commands,
		Env:          dto.Env,
		Owner:        owner,
	}, nil
}

func buildService(dto ServiceDTO) (domain.Service, error) {
	if dto.Name == "" {
		return domain.Service{}, zerr.Wrap(domain.ErrMissingName, "service without a name")
	}
	serviceType, err := domain.ParseServiceType(dto.ServiceType)
	if err != nil {
		return domain.Service{}, zerr.With(err, "service", dto.Name)
	}
	return domain.Service{
		Name:      dto.Name,
		Type:      serviceType,
		Container: dto.Container,
	}, nil
}

// warnDuplicates reports names that are shadowed by an earlier declaration.
// Lookups are case-insensitive and the first declaration wins.
func (l *Loader) warnDuplicates(project *domain.Project) {
	check := func(kind string, names []string) {
		seen := make(map[string]struct{}, len(names))
		for _, name := range names {
			key := strings.ToLower(name)
			if _, ok := seen[key]; ok {
				l.Logger.Warn(fmt.Sprintf("duplicate %s name %q: only the first declaration is used", kind, name))
				continue
			}
			seen[key] = struct{}{}
		}
	}

	check("component", project.ComponentNames())

	groups := make([]string, 0, len(project.Groups))
	for _, g := range project.Groups {
		groups = append(groups, g.Name)
	}
	check("group", groups)

	services := make([]string, 0, len(project.Services))
	for _, s := range project.Services {
		services = append(services, s.Name)
	}
	check("service", services)

	tasks := make([]string, 0, len(project.Tasks))
	for _, t := range project.Tasks {
		tasks = append(tasks, t.Name)
	}
	check("task", tasks)

	for _, c := range project.Components {
		scoped := make([]string, 0, len(c.Tasks))
		for _, t := range c.Tasks {
			scoped = append(scoped, t.QualifiedName())
		}
		check("task", scoped)
	}
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath comes from Find or the user
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read config file"), "path", configPath)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", configPath)
	}

	return nil
}
