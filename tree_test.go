package ugit

import (
	"errors"
	"testing"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/ginternals/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeRoundTrip(t *testing.T) {
	t.Parallel()

	fs, r := newTestRepo(t)
	files := map[string]string{
		"a.txt":         "a\n",
		"dir/b.txt":     "b\n",
		"dir/sub/c.txt": "c\n",
	}
	writeFiles(t, fs, r, files)

	oid, err := r.WriteTree()
	require.NoError(t, err)

	flat, err := r.FlattenTree(oid, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "dir/b.txt", "dir/sub/c.txt"}, flat.Paths())

	wt, err := r.WorkingTree()
	require.NoError(t, err)
	assert.Equal(t, flat, wt)

	// Writing the same content twice should give the same tree
	oid2, err := r.WriteTree()
	require.NoError(t, err)
	assert.Equal(t, oid, oid2)

	// The content should be restored after being changed
	writeFiles(t, fs, r, map[string]string{
		"a.txt":   "changed\n",
		"new.txt": "new\n",
	})
	require.NoError(t, r.ReadTree(oid))
	assert.Equal(t, files, readFiles(t, fs, r))
}

func TestFlattenTree(t *testing.T) {
	t.Parallel()

	t.Run("should prefix with the base", func(t *testing.T) {
		t.Parallel()

		fs, r := newTestRepo(t)
		writeFiles(t, fs, r, map[string]string{"dir/a.txt": "a\n"})
		oid, err := r.WriteTree()
		require.NoError(t, err)

		flat, err := r.FlattenTree(oid, "base")
		require.NoError(t, err)
		assert.Equal(t, []string{"base/dir/a.txt"}, flat.Paths())
	})

	t.Run("should fail on a tree containing ..", func(t *testing.T) {
		t.Parallel()

		_, r := newTestRepo(t)
		blob, err := r.NewBlob([]byte("nope"))
		require.NoError(t, err)
		o := object.New(object.TypeTree, []byte("blob "+blob.ID().String()+" ..\n"))
		oid, err := r.WriteObject(o)
		require.NoError(t, err)

		_, err = r.FlattenTree(oid, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, object.ErrUnexpectedFilename), "unexpected error: %v", err)
	})

	t.Run("should fail on a blob", func(t *testing.T) {
		t.Parallel()

		_, r := newTestRepo(t)
		blob, err := r.NewBlob([]byte("nope"))
		require.NoError(t, err)

		_, err = r.FlattenTree(blob.ID(), "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, object.ErrTypeMismatch), "unexpected error: %v", err)
	})
}

func TestCompareTrees(t *testing.T) {
	t.Parallel()

	a := ginternals.NewOidFromContent([]byte("a"))
	b := ginternals.NewOidFromContent([]byte("b"))

	out := compareTrees(
		TreeMap{"same": a, "left": a, "changed": a},
		TreeMap{"same": a, "right": b, "changed": b},
	)
	assert.Equal(t, map[string][]ginternals.Oid{
		"same":    {a, a},
		"left":    {a, ginternals.NullOid},
		"right":   {ginternals.NullOid, b},
		"changed": {a, b},
	}, out)
}
