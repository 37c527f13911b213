package ports

import "context"

// RepoCloner clones a repository into a directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=cloner.go -destination=mocks/mock_cloner.go -package=mocks
type RepoCloner interface {
	// Clone clones url into dir. It fails if dir already exists.
	Clone(ctx context.Context, url, dir string) error
}
