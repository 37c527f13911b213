package git_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/conductor/internal/adapters/git"
	"go.trai.ch/conductor/internal/core/domain"
)

// newOrigin creates a local repository with a single commit.
func newOrigin(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0o600))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir
}

func TestCloner_Clone(t *testing.T) {
	origin := newOrigin(t)
	target := filepath.Join(t.TempDir(), "api")

	require.NoError(t, git.NewCloner(nil).Clone(t.Context(), origin, target))

	data, err := os.ReadFile(filepath.Join(target, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestCloner_ExistingDirectory(t *testing.T) {
	target := t.TempDir()

	err := git.NewCloner(nil).Clone(t.Context(), "https://example.invalid/repo.git", target)
	require.ErrorIs(t, err, domain.ErrDirectoryExists)
}

func TestCloner_FailureRemovesPartialCheckout(t *testing.T) {
	target := filepath.Join(t.TempDir(), "api")

	err := git.NewCloner(nil).Clone(t.Context(), filepath.Join(t.TempDir(), "missing"), target)
	require.Error(t, err)

	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCloner_Auth(t *testing.T) {
	assert.Nil(t, git.AuthWith(nil))
	assert.Nil(t, git.AuthWith(map[string]string{git.EnvUser: "me"}))

	auth := git.AuthWith(map[string]string{git.EnvUser: "me", git.EnvToken: "secret"})
	require.IsType(t, &http.BasicAuth{}, auth)
	assert.Equal(t, "me", auth.(*http.BasicAuth).Username)
	assert.Equal(t, "secret", auth.(*http.BasicAuth).Password)
}
