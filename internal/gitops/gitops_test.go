package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func TestInit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	assert.False(t, IsRepo(dir), "empty dir should not be a repo")

	require.NoError(t, Init(dir))
	assert.True(t, IsRepo(dir), "initialized dir should be a repo")
}

func TestCommitAll(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	require.NoError(t, Init(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "incomes.csv"), []byte("id\n"), 0o644))

	author := Author{Name: "Test Owner", Email: "owner@example.com"}
	hash, err := CommitAll(dir, "walletguard: init", author)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	subjects, err := Log(dir, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"walletguard: init"}, subjects)

	out, err := git(dir, nil, "log", "--format=%an <%ae>", "-1")
	require.NoError(t, err)
	assert.Equal(t, "Test Owner <owner@example.com>", out)
}

func TestCommitAll_CleanTree(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	require.NoError(t, Init(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x\n"), 0o644))

	author := Author{Name: "a", Email: "a@example.com"}
	_, err := CommitAll(dir, "first", author)
	require.NoError(t, err)

	hash, err := CommitAll(dir, "second", author)
	require.NoError(t, err)
	assert.Empty(t, hash)
}

func TestCommitAll_NotARepo(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	_, err := CommitAll(dir, "msg", Author{Name: "a", Email: "a@example.com"})
	require.Error(t, err)
}
