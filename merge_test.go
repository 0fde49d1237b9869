package ugit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Nivl/ugit/ginternals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeBase(t *testing.T) {
	t.Parallel()

	t.Run("should find the fork point", func(t *testing.T) {
		t.Parallel()

		fs, r := newTestRepo(t)
		base := commitFiles(t, fs, r, "base", map[string]string{"a.txt": "a\n"})
		main := commitFiles(t, fs, r, "main", map[string]string{"a.txt": "main\n"})
		require.NoError(t, r.Reset(base))
		other := commitFiles(t, fs, r, "other", map[string]string{"a.txt": "other\n"})

		oid, err := r.MergeBase(main, other)
		require.NoError(t, err)
		assert.Equal(t, base, oid)

		oid, err = r.MergeBase(main, base)
		require.NoError(t, err)
		assert.Equal(t, base, oid)
	})

	t.Run("should fail with unrelated histories", func(t *testing.T) {
		t.Parallel()

		_, r := newTestRepo(t)
		tree, err := r.NewTreeBuilder().Write()
		require.NoError(t, err)
		a, err := r.CommitWithTree(tree.ID(), nil, "a")
		require.NoError(t, err)
		b, err := r.CommitWithTree(tree.ID(), nil, "b")
		require.NoError(t, err)

		_, err = r.MergeBase(a.ID(), b.ID())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoCommonAncestor), "unexpected error: %v", err)
	})
}

func TestMerge(t *testing.T) {
	t.Parallel()

	t.Run("should fast-forward", func(t *testing.T) {
		t.Parallel()

		fs, r := newTestRepo(t)
		base := commitFiles(t, fs, r, "base", map[string]string{"a.txt": "a\n"})
		require.NoError(t, r.CreateBranch("feature", base))
		require.NoError(t, r.Checkout("feature"))
		files := map[string]string{"a.txt": "a\n", "b.txt": "b\n"}
		feature := commitFiles(t, fs, r, "feature", files)
		require.NoError(t, r.Checkout(ginternals.Main))
		assert.Equal(t, map[string]string{"a.txt": "a\n"}, readFiles(t, fs, r))

		res, err := r.Merge(context.Background(), feature)
		require.NoError(t, err)
		assert.True(t, res.FastForward)
		assert.False(t, res.UpToDate)
		assert.Equal(t, base, res.Base)
		assert.Equal(t, files, readFiles(t, fs, r))

		// HEAD should still be on main
		name, err := r.BranchName()
		require.NoError(t, err)
		assert.Equal(t, ginternals.Main, name)
		head, err := r.Head()
		require.NoError(t, err)
		assert.Equal(t, feature, head.Target())

		mergeHead, err := r.Reference(ginternals.MergeHead, false)
		require.NoError(t, err)
		assert.True(t, mergeHead.IsUnborn())
	})

	t.Run("should do nothing if already merged", func(t *testing.T) {
		t.Parallel()

		fs, r := newTestRepo(t)
		base := commitFiles(t, fs, r, "base", map[string]string{"a.txt": "a\n"})
		head := commitFiles(t, fs, r, "head", map[string]string{"a.txt": "b\n"})

		res, err := r.Merge(context.Background(), base)
		require.NoError(t, err)
		assert.True(t, res.UpToDate)
		assert.False(t, res.FastForward)

		ref, err := r.Head()
		require.NoError(t, err)
		assert.Equal(t, head, ref.Target())
		assert.Equal(t, map[string]string{"a.txt": "b\n"}, readFiles(t, fs, r))

		mergeHead, err := r.Reference(ginternals.MergeHead, false)
		require.NoError(t, err)
		assert.True(t, mergeHead.IsUnborn())
	})

	t.Run("should merge disjoint changes", func(t *testing.T) {
		t.Parallel()

		fs, r := newTestRepo(t)
		base := commitFiles(t, fs, r, "base", map[string]string{
			"a.txt":       "a1\n",
			"b.txt":       "b1\n",
			"removed.txt": "removed\n",
			"multi.txt":   "1\n2\n3\n4\n5\n6\n7\n8\n",
		})
		require.NoError(t, r.CreateBranch("feature", base))
		head := commitFiles(t, fs, r, "head", map[string]string{
			"a.txt":     "a2\n",
			"b.txt":     "b1\n",
			"multi.txt": "one\n2\n3\n4\n5\n6\n7\n8\n",
		})
		require.NoError(t, r.Checkout("feature"))
		other := commitFiles(t, fs, r, "other", map[string]string{
			"a.txt":       "a1\n",
			"b.txt":       "b2\n",
			"removed.txt": "removed\n",
			"multi.txt":   "1\n2\n3\n4\n5\n6\n7\neight\n",
			"new.txt":     "new\n",
		})
		require.NoError(t, r.Checkout(ginternals.Main))

		res, err := r.Merge(context.Background(), other)
		require.NoError(t, err)
		assert.False(t, res.FastForward)
		assert.False(t, res.UpToDate)
		assert.Equal(t, base, res.Base)
		assert.Empty(t, res.Conflicts)
		assert.Equal(t, map[string]string{
			"a.txt":     "a2\n",
			"b.txt":     "b2\n",
			"multi.txt": "one\n2\n3\n4\n5\n6\n7\neight\n",
			"new.txt":   "new\n",
		}, readFiles(t, fs, r))

		mergeHead, err := r.Reference(ginternals.MergeHead, false)
		require.NoError(t, err)
		assert.Equal(t, other, mergeHead.Target())

		// HEAD hasn't moved until the merge is committed
		ref, err := r.Head()
		require.NoError(t, err)
		assert.Equal(t, head, ref.Target())

		c, err := r.Commit("merge")
		require.NoError(t, err)
		assert.Equal(t, []ginternals.Oid{head, other}, c.ParentIDs())

		oid, err := r.MergeBase(head, c.ID())
		require.NoError(t, err)
		assert.Equal(t, head, oid)
	})

	t.Run("should write conflict markers", func(t *testing.T) {
		t.Parallel()

		fs, r := newTestRepo(t)
		base := commitFiles(t, fs, r, "base", map[string]string{"a.txt": "a\n"})
		require.NoError(t, r.CreateBranch("feature", base))
		commitFiles(t, fs, r, "head", map[string]string{"a.txt": "head\n"})
		require.NoError(t, r.Checkout("feature"))
		other := commitFiles(t, fs, r, "other", map[string]string{"a.txt": "other\n"})
		require.NoError(t, r.Checkout(ginternals.Main))

		res, err := r.Merge(context.Background(), other)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt"}, res.Conflicts)

		content := readFiles(t, fs, r)["a.txt"]
		for _, marker := range []string{"<<<<<<< HEAD", "||||||| BASE", "=======", ">>>>>>> MERGE_HEAD"} {
			assert.True(t, strings.Contains(content, marker), "%q not found in %q", marker, content)
		}
	})

	t.Run("should fail on an unborn HEAD", func(t *testing.T) {
		t.Parallel()

		_, r := newTestRepo(t)
		_, err := r.Merge(context.Background(), ginternals.NewOidFromContent([]byte("nope")))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnbornHead), "unexpected error: %v", err)
	})

	t.Run("should not touch anything when the tool fails", func(t *testing.T) {
		t.Parallel()

		fs, r := newTestRepo(t)
		base := commitFiles(t, fs, r, "base", map[string]string{"a.txt": "a\n"})
		require.NoError(t, r.CreateBranch("feature", base))
		commitFiles(t, fs, r, "head", map[string]string{"a.txt": "head\n"})
		require.NoError(t, r.Checkout("feature"))
		other := commitFiles(t, fs, r, "other", map[string]string{"a.txt": "other\n"})
		require.NoError(t, r.Checkout(ginternals.Main))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := r.Merge(ctx, other)
		require.Error(t, err)

		mergeHead, err := r.Reference(ginternals.MergeHead, false)
		require.NoError(t, err)
		assert.True(t, mergeHead.IsUnborn())
		assert.Equal(t, map[string]string{"a.txt": "head\n"}, readFiles(t, fs, r))
	})
}
