package ginternals_test

import (
	"path/filepath"
	"testing"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/internal/testhelper/confutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTagFullName(t *testing.T) {
	t.Parallel()

	out := ginternals.LocalTagFullName("my-tag/nested")
	expect := "refs/tags/my-tag/nested"
	require.Equal(t, expect, out)
}

func TestLocalTagShortName(t *testing.T) {
	t.Parallel()

	out := ginternals.LocalTagShortName("refs/tags/my-tag/nested")
	expect := "my-tag/nested"
	require.Equal(t, expect, out)
}

func TestLocalBranchFullName(t *testing.T) {
	t.Parallel()

	out := ginternals.LocalBranchFullName("my-branch/nested")
	expect := "refs/heads/my-branch/nested"
	require.Equal(t, expect, out)
}

func TestLocalBranchShortName(t *testing.T) {
	t.Parallel()

	out := ginternals.LocalBranchShortName("refs/heads/my-branch/nested")
	expect := "my-branch/nested"
	require.Equal(t, expect, out)
}

func TestIsLocalBranch(t *testing.T) {
	t.Parallel()

	assert.True(t, ginternals.IsLocalBranch("refs/heads/main"))
	assert.False(t, ginternals.IsLocalBranch("refs/tags/main"))
	assert.False(t, ginternals.IsLocalBranch("main"))
}

func TestRefFullName(t *testing.T) {
	t.Parallel()

	out := ginternals.RefFullName("heads/main")
	expect := "refs/heads/main"
	require.Equal(t, expect, out)
}

func TestPaths(t *testing.T) {
	t.Parallel()

	_, cfg := confutil.NewMemConfig(t)
	root := cfg.WorkTreePath
	dotUgit := filepath.Join(root, ".ugit")

	assert.Equal(t, dotUgit, ginternals.DotGitPath(cfg))
	assert.Equal(t, filepath.Join(dotUgit, "refs"), ginternals.RefsPath(cfg))
	assert.Equal(t, filepath.Join(dotUgit, "refs", "heads", "main"), ginternals.RefPath(cfg, "refs/heads/main"))
	assert.Equal(t, filepath.Join(dotUgit, "HEAD"), ginternals.RefPath(cfg, ginternals.Head))
	assert.Equal(t, filepath.Join(dotUgit, "refs", "tags"), ginternals.TagsPath(cfg))
	assert.Equal(t, filepath.Join(dotUgit, "refs", "heads"), ginternals.LocalBranchesPath(cfg))
	assert.Equal(t, filepath.Join(dotUgit, "objects"), ginternals.ObjectsPath(cfg))
	assert.Equal(t, filepath.Join(dotUgit, "objects", "a921a1ed31bcddeb5a51085e5d7dbdc7cf86b905"), ginternals.ObjectPath(cfg, "a921a1ed31bcddeb5a51085e5d7dbdc7cf86b905"))
	assert.Equal(t, filepath.Join(dotUgit, "config"), ginternals.ConfigPath(cfg))
}
