package gitmeta

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_NotARepository(t *testing.T) {
	ctx := Resolve(t.TempDir())
	assert.True(t, ctx.Empty())
}

func TestResolve_Repository(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:acme/widget.git"},
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("f.txt")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "t", Email: "t@example.com"},
	})
	require.NoError(t, err)

	ctx := Resolve(dir)
	assert.Equal(t, "acme/widget", ctx.Repository)
	assert.Equal(t, hash.String(), ctx.Commit)
	assert.NotEmpty(t, ctx.Branch)
}

func TestResolve_SubdirectoryOfRepo(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	sub := filepath.Join(dir, "src", "pkg")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	// DetectDotGit walks upward, so a nested scan root still resolves.
	// An unborn HEAD leaves commit/branch empty but the open succeeds.
	ctx := Resolve(sub)
	assert.True(t, ctx.Empty())
}

func TestShortenRemote(t *testing.T) {
	cases := map[string]string{
		"https://github.com/acme/widget.git": "acme/widget",
		"https://gitlab.com/grp/sub/app":     "grp/sub/app",
		"git@github.com:acme/widget.git":     "acme/widget",
		"ssh://git@github.com/acme/widget":   "acme/widget",
		"acme/widget":                        "acme/widget",
	}
	for in, want := range cases {
		assert.Equal(t, want, shortenRemote(in), "input %q", in)
	}
}
