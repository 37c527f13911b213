package ports

import "go.trai.ch/conductor/internal/core/domain"

// ConfigLoader defines the interface for locating and loading the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Find searches cwd and its parents for a file called filename and returns its path.
	Find(cwd, filename string) (string, error)

	// Load reads the configuration at path. The project's RootPath is the file's directory.
	Load(path string) (*domain.Project, error)
}
