package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/conductor/internal/adapters/config"
	"go.trai.ch/conductor/internal/core/domain"
	"go.trai.ch/conductor/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const fullConfig = `
name: Band
env:
  REGION: eu
components:
  - name: api
    path: services/api
    color: Blue
    env:
      PORT: "8080"
    start: go run .
    init:
      - go mod download
    tags: [backend]
    retry: true
    delay: 2
    services: [postgres]
    tasks:
      - name: migrate
        commands: make migrate
  - name: web
    keep_alive: true
    default: false
    start: npm start
groups:
  - name: all
    components: [api, web]
    env:
      MODE: group
services:
  - name: postgres
    service_type: DockerContainer
    container: pg-dev
tasks:
  - name: build
    description: Build everything
    dependencies: [lint, test]
    commands:
      - echo one
      - echo two
`

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	dir := t.TempDir()
	path := writeConfig(t, dir, fullConfig)

	project, err := config.NewLoader(mockLogger).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Band", project.Name)
	assert.Equal(t, map[string]string{"REGION": "eu"}, project.Env)
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, project.RootPath)

	require.Len(t, project.Components, 2)
	api := project.Components[0]
	assert.Equal(t, "api", api.Name)
	assert.Equal(t, "services/api", api.Dir())
	assert.Equal(t, domain.ColorBlue, api.Color)
	assert.Equal(t, "go run .", api.Start)
	assert.Equal(t, []string{"go mod download"}, api.Init)
	assert.Equal(t, []string{"backend"}, api.Tags)
	assert.True(t, api.Retry)
	assert.False(t, api.KeepAlive)
	assert.True(t, api.Default)
	assert.Equal(t, uint(2), api.Delay)
	assert.Equal(t, []string{"postgres"}, api.Services)
	require.Len(t, api.Tasks, 1)
	assert.Equal(t, []string{"make migrate"}, api.Tasks[0].Commands)
	assert.Equal(t, "api", api.Tasks[0].Owner)

	web := project.Components[1]
	assert.Equal(t, domain.DefaultColor, web.Color)
	assert.Equal(t, "web", web.Dir())
	assert.True(t, web.KeepAlive)
	assert.False(t, web.Default)
	assert.False(t, web.Retry)

	require.Len(t, project.Groups, 1)
	assert.Equal(t, []string{"api", "web"}, project.Groups[0].Components)
	assert.Equal(t, "group", project.Groups[0].Env["MODE"])

	require.Len(t, project.Services, 1)
	assert.Equal(t, domain.ServiceTypeContainer, project.Services[0].Type)
	assert.Equal(t, "pg-dev", project.Services[0].ContainerName())

	require.Len(t, project.Tasks, 1)
	build := project.Tasks[0]
	assert.Equal(t, "Build everything", build.Description)
	assert.Equal(t, []string{"lint", "test"}, build.Dependencies)
	assert.Equal(t, []string{"echo one", "echo two"}, build.Commands)
	assert.Empty(t, build.Owner)
}

func TestLoader_Load_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	path := writeConfig(t, t.TempDir(), "components:\n  - name: solo\n")

	project, err := config.NewLoader(mockLogger).Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultProjectName, project.Name)
	require.Len(t, project.Components, 1)
	assert.Equal(t, domain.ColorYellow, project.Components[0].Color)
	assert.True(t, project.Components[0].Default)
	assert.Empty(t, project.Groups)
	assert.Empty(t, project.Tasks)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"component without name", "components:\n  - start: echo\n", domain.ErrMissingName},
		{"group without name", "groups:\n  - components: [a]\n", domain.ErrMissingName},
		{"component task without name", "components:\n  - name: a\n    tasks:\n      - commands: echo\n", domain.ErrMissingName},
		{"bad color", "components:\n  - name: a\n    color: orange\n", domain.ErrInvalidColor},
		{"bad service type", "services:\n  - name: s\n    service_type: Podman\n", domain.ErrInvalidServiceType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			path := writeConfig(t, t.TempDir(), tt.content)

			_, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(path)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoader_Load_Malformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	path := writeConfig(t, t.TempDir(), "components: [\n")

	_, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoader_Load_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoader_Load_WarnsOnDuplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(2)

	content := `
components:
  - name: api
  - name: API
    tasks:
      - name: t
      - name: T
`
	path := writeConfig(t, t.TempDir(), content)

	project, err := config.NewLoader(mockLogger).Load(path)
	require.NoError(t, err)

	c, ok := project.ComponentByName("Api")
	require.True(t, ok)
	assert.Equal(t, "api", c.Name)
}

func TestLoader_Find(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	root := t.TempDir()
	want := writeConfig(t, root, "name: x\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	t.Run("walks up to the parent", func(t *testing.T) {
		got, err := loader.Find(nested, config.DefaultFileName)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("empty filename uses the default", func(t *testing.T) {
		got, err := loader.Find(root, "")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("absolute path", func(t *testing.T) {
		got, err := loader.Find(nested, want)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := loader.Find(nested, "other.yml")
		require.ErrorIs(t, err, domain.ErrConfigNotFound)
	})

	t.Run("absolute path not found", func(t *testing.T) {
		_, err := loader.Find(nested, filepath.Join(root, "missing.yml"))
		require.ErrorIs(t, err, domain.ErrConfigNotFound)
	})
}

func TestCommands_UnmarshalScalarAndSequence(t *testing.T) {
	ctrl := gomock.NewController(t)
	content := `
tasks:
  - name: one
    commands: echo hi
  - name: many
    commands: [echo a, echo b]
  - name: none
`
	path := writeConfig(t, t.TempDir(), content)

	project, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(path)
	require.NoError(t, err)
	require.Len(t, project.Tasks, 3)
	assert.Equal(t, []string{"echo hi"}, project.Tasks[0].Commands)
	assert.Equal(t, []string{"echo a", "echo b"}, project.Tasks[1].Commands)
	assert.Empty(t, project.Tasks[2].Commands)
}
