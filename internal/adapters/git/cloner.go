// Package git clones component repositories.
package git

import (
	"context"
	"errors"
	"io"
	"os"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"go.trai.ch/conductor/internal/core/domain"
	"go.trai.ch/zerr"
)

// Environment variables holding HTTP basic credentials for private repositories.
const (
	EnvUser  = "GIT_USER"
	EnvToken = "GIT_PAT"
)

// Cloner implements ports.RepoCloner using go-git.
type Cloner struct {
	progress io.Writer
	lookup   func(string) (string, bool)
}

// NewCloner creates a Cloner that reads credentials from the process environment.
// Clone progress is written to progress when it is non-nil.
func NewCloner(progress io.Writer) *Cloner {
	return &Cloner{progress: progress, lookup: os.LookupEnv}
}

// Clone clones url into dir. It refuses to touch an existing directory.
func (c *Cloner) Clone(ctx context.Context, url, dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return zerr.With(zerr.Wrap(domain.ErrDirectoryExists, "refusing to clone"), "dir", dir)
	} else if !errors.Is(err, os.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to inspect clone target"), "dir", dir)
	}

	_, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:      url,
		Auth:     c.auth(),
		Progress: c.progress,
	})
	if err != nil {
		// A failed clone leaves a partial checkout behind.
		_ = os.RemoveAll(dir)
		err = zerr.With(zerr.Wrap(err, "failed to clone repository"), "url", url)
		return zerr.With(err, "dir", dir)
	}
	return nil
}

func (c *Cloner) auth() transport.AuthMethod {
	user, hasUser := c.lookup(EnvUser)
	token, hasToken := c.lookup(EnvToken)
	if !hasUser || !hasToken {
		return nil
	}
	return &http.BasicAuth{Username: user, Password: token}
}
