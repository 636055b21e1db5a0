package git

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a repository in a temp dir and returns its resolved path.
func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func TestRepositoryRoot(t *testing.T) {
	t.Parallel()

	dir, _ := initRepo(t)
	nested := filepath.Join(dir, "crates", "core")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	root, err := RepositoryRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestRepositoryRoot_NotARepository(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := RepositoryRoot(dir)
	assert.Error(t, err)
}

func TestCurrentBranch(t *testing.T) {
	t.Parallel()

	dir, repo := initRepo(t)

	branch, err := CurrentBranch(dir)
	require.NoError(t, err)
	assert.Empty(t, branch, "no commits yet")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	branch, err = CurrentBranch(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, branch)
}

func TestWorkspaceRoot(t *testing.T) {
	t.Parallel()

	t.Run("explicit dir is made absolute", func(t *testing.T) {
		t.Parallel()

		got, err := WorkspaceRoot("some/rel")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, filepath.Join("some", "rel"), got[len(got)-len(filepath.Join("some", "rel")):])
	})
}

func TestSetDebugLogger(t *testing.T) {
	var lines []string
	SetDebugLogger(func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})
	t.Cleanup(func() { SetDebugLogger(nil) })

	dir, _ := initRepo(t)
	_, err := RepositoryRoot(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, lines)
}
