package backend_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/Nivl/ugit/backend"
	"github.com/Nivl/ugit/ginternals"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReference(t *testing.T) {
	t.Parallel()

	commit := ginternals.NewOidFromContent([]byte("commit"))

	t.Run("deref should update the end of the chain", func(t *testing.T) {
		t.Parallel()

		fs, cfg, b := newBackend(t)
		require.NoError(t, b.WriteReference(ginternals.NewReference(ginternals.Head, commit), true))

		// HEAD is still symbolic
		head, err := b.Reference(ginternals.Head, false)
		require.NoError(t, err)
		assert.True(t, head.IsSymbolic())

		data, err := afero.ReadFile(fs, ginternals.RefPath(cfg, "refs/heads/main"))
		require.NoError(t, err)
		assert.Equal(t, commit.String()+"\n", string(data))

		resolved, err := b.Reference(ginternals.Head, true)
		require.NoError(t, err)
		assert.Equal(t, "refs/heads/main", resolved.Name())
		assert.Equal(t, commit, resolved.Target())
	})

	t.Run("no deref should replace the reference", func(t *testing.T) {
		t.Parallel()

		_, _, b := newBackend(t)
		require.NoError(t, b.WriteReference(ginternals.NewReference(ginternals.Head, commit), false))

		head, err := b.Reference(ginternals.Head, false)
		require.NoError(t, err)
		assert.False(t, head.IsSymbolic())
		assert.Equal(t, commit, head.Target())

		main, err := b.Reference("refs/heads/main", true)
		require.NoError(t, err)
		assert.True(t, main.IsUnborn())
	})

	t.Run("nested names should be supported", func(t *testing.T) {
		t.Parallel()

		_, _, b := newBackend(t)
		require.NoError(t, b.WriteReference(ginternals.NewReference("refs/heads/feat/nested/name", commit), false))

		ref, err := b.Reference("refs/heads/feat/nested/name", true)
		require.NoError(t, err)
		assert.Equal(t, commit, ref.Target())
	})

	t.Run("empty values should be rejected", func(t *testing.T) {
		t.Parallel()

		_, _, b := newBackend(t)
		err := b.WriteReference(ginternals.NewReference("refs/heads/main", ginternals.NullOid), false)
		require.ErrorIs(t, err, ginternals.ErrRefInvalid)
	})

	t.Run("invalid names should be rejected", func(t *testing.T) {
		t.Parallel()

		_, _, b := newBackend(t)
		err := b.WriteReference(ginternals.NewReference("refs/heads/in valid", commit), false)
		require.ErrorIs(t, err, ginternals.ErrRefNameInvalid)
	})

	t.Run("WriteReferenceSafe should not overwrite", func(t *testing.T) {
		t.Parallel()

		_, _, b := newBackend(t)
		ref := ginternals.NewReference("refs/tags/v1", commit)
		require.NoError(t, b.WriteReferenceSafe(ref))
		require.ErrorIs(t, b.WriteReferenceSafe(ref), ginternals.ErrRefExists)
	})

	t.Run("no temporary files should be left", func(t *testing.T) {
		t.Parallel()

		fs, cfg, b := newBackend(t)
		require.NoError(t, b.WriteReference(ginternals.NewReference("refs/heads/main", commit), false))

		entries, err := afero.ReadDir(fs, filepath.Join(cfg.GitDirPath, "refs", "heads"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "main", entries[0].Name())
	})
}

func TestReferenceOnDirectory(t *testing.T) {
	t.Parallel()

	commit := ginternals.NewOidFromContent([]byte("commit"))
	_, _, b := newBackend(t)
	require.NoError(t, b.WriteReference(ginternals.NewReference("refs/heads/feature/x", commit), false))

	testCases := []struct {
		desc string
		name string
	}{
		{desc: "refs/heads", name: "refs/heads"},
		{desc: "refs/tags", name: "refs/tags"},
		{desc: "objects", name: "objects"},
		{desc: "prefix of a nested branch", name: "refs/heads/feature"},
	}
	for i, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
			t.Parallel()

			ref, err := b.Reference(tc.name, true)
			require.NoError(t, err)
			assert.True(t, ref.IsUnborn())
		})
	}
}

func TestDeleteReference(t *testing.T) {
	t.Parallel()

	commit := ginternals.NewOidFromContent([]byte("commit"))
	_, _, b := newBackend(t)

	require.NoError(t, b.WriteReference(ginternals.NewReference(ginternals.MergeHead, commit), false))
	require.NoError(t, b.DeleteReference(ginternals.MergeHead))

	ref, err := b.Reference(ginternals.MergeHead, true)
	require.NoError(t, err)
	assert.True(t, ref.IsUnborn())

	// deleting again is a no-op
	require.NoError(t, b.DeleteReference(ginternals.MergeHead))
}

func TestWalkReferences(t *testing.T) {
	t.Parallel()

	commit := ginternals.NewOidFromContent([]byte("commit"))
	other := ginternals.NewOidFromContent([]byte("other"))

	fs, cfg, b := newBackend(t)
	require.NoError(t, b.WriteReference(ginternals.NewReference(ginternals.Head, commit), true))
	require.NoError(t, b.WriteReference(ginternals.NewReference("refs/heads/feature", other), false))
	require.NoError(t, b.WriteReference(ginternals.NewReference("refs/tags/v1", commit), false))
	require.NoError(t, b.WriteReference(ginternals.NewReference(ginternals.MergeHead, other), false))
	// leftovers of a crash should be ignored
	require.NoError(t, afero.WriteFile(fs, filepath.Join(cfg.GitDirPath, "refs", "heads", ".main-1234"), []byte("junk"), 0o644))

	t.Run("all references, HEAD first, without MERGE_HEAD", func(t *testing.T) {
		t.Parallel()

		names := []string{}
		targets := map[string]ginternals.Oid{}
		err := b.WalkReferences("", false, func(ref *ginternals.Reference) error {
			names = append(names, ref.Name())
			targets[ref.Name()] = ref.Target()
			return nil
		})
		require.NoError(t, err)
		require.Len(t, names, 4)
		assert.Equal(t, ginternals.Head, names[0])
		assert.ElementsMatch(t, []string{"refs/heads/main", "refs/heads/feature", "refs/tags/v1"}, names[1:])
		assert.NotContains(t, names, ginternals.MergeHead)
		assert.Equal(t, other, targets["refs/heads/feature"])
	})

	t.Run("deref", func(t *testing.T) {
		t.Parallel()

		var head *ginternals.Reference
		err := b.WalkReferences(ginternals.Head, true, func(ref *ginternals.Reference) error {
			head = ref
			return backend.WalkStop
		})
		require.NoError(t, err)
		require.NotNil(t, head)
		assert.Equal(t, "refs/heads/main", head.Name())
		assert.Equal(t, commit, head.Target())
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()

		names := []string{}
		err := b.WalkReferences("refs/heads/", true, func(ref *ginternals.Reference) error {
			names = append(names, ref.Name())
			return nil
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"refs/heads/main", "refs/heads/feature"}, names)
	})

	t.Run("WalkStop should stop the walk", func(t *testing.T) {
		t.Parallel()

		count := 0
		err := b.WalkReferences("", false, func(ref *ginternals.Reference) error {
			count++
			return backend.WalkStop
		})
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
