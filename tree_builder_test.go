package ugit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/ginternals/object"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newObjects stores a blob, an empty tree, and a commit
func newObjects(t *testing.T, r *Repository) (blob, tree, commit ginternals.Oid) {
	t.Helper()

	b, err := r.NewBlob([]byte("hello\n"))
	require.NoError(t, err)
	tr, err := r.NewTreeBuilder().Write()
	require.NoError(t, err)
	c, err := r.CommitWithTree(tr.ID(), nil, "msg")
	require.NoError(t, err)
	return b.ID(), tr.ID(), c.ID()
}

func TestTreeBuilderInsert(t *testing.T) {
	t.Parallel()

	t.Run("single pass/fail", func(t *testing.T) {
		t.Parallel()

		_, r := newTestRepo(t)
		blob, tree, commit := newObjects(t, r)

		testCases := []struct {
			desc          string
			name          string
			oid           ginternals.Oid
			expectedError error
			expectedType  object.Type
		}{
			{
				desc:          "should fail inserting an object that doesn't exist",
				name:          "somewhere",
				oid:           ginternals.NullOid,
				expectedError: ginternals.ErrObjectNotFound,
			},
			{
				desc:          "should fail inserting a commit",
				name:          "somewhere",
				oid:           commit,
				expectedError: object.ErrObjectInvalid,
			},
			{
				desc:          "should fail with an invalid name",
				name:          "some/where",
				oid:           blob,
				expectedError: object.ErrUnexpectedFilename,
			},
			{
				desc:         "should pass inserting a blob",
				name:         "somewhere",
				oid:          blob,
				expectedType: object.TypeBlob,
			},
			{
				desc:         "should pass inserting a tree",
				name:         "somewhere",
				oid:          tree,
				expectedType: object.TypeTree,
			},
		}
		for i, tc := range testCases {
			tc := tc
			t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
				t.Parallel()

				tb := r.NewTreeBuilder()
				err := tb.Insert(tc.name, tc.oid)
				if tc.expectedError != nil {
					require.Error(t, err)
					assert.True(t, errors.Is(err, tc.expectedError), "unexpected error: %v", err)
					return
				}
				require.NoError(t, err)
				require.Len(t, tb.entries, 1)
				assert.Equal(t, tc.expectedType, tb.entries[tc.name].Type)
			})
		}
	})

	t.Run("should pass overwritting a path", func(t *testing.T) {
		t.Parallel()

		_, r := newTestRepo(t)
		blob, tree, _ := newObjects(t, r)

		tb := r.NewTreeBuilder()
		require.NoError(t, tb.Insert("path", blob))
		require.NoError(t, tb.Insert("path", tree))

		assert.Len(t, tb.entries, 1)
		require.Contains(t, tb.entries, "path")
		require.Equal(t, tree, tb.entries["path"].ID)
		require.Equal(t, object.TypeTree, tb.entries["path"].Type)
	})
}

func TestTreeBuilderRemove(t *testing.T) {
	t.Parallel()

	t.Run("should remove elements", func(t *testing.T) {
		t.Parallel()

		_, r := newTestRepo(t)
		blob, tree, _ := newObjects(t, r)

		tb := r.NewTreeBuilder()
		require.NoError(t, tb.Insert("blob", blob))
		require.NoError(t, tb.Insert("tree", tree))
		assert.Len(t, tb.entries, 2)

		tb.Remove("blob")
		assert.Len(t, tb.entries, 1)

		tb.Remove("tree")
		assert.Len(t, tb.entries, 0)
	})

	t.Run("should pass removing something that doesn't exists", func(t *testing.T) {
		t.Parallel()

		_, r := newTestRepo(t)
		tb := r.NewTreeBuilder()

		assert.Len(t, tb.entries, 0)
		tb.Remove("blob")
		assert.Len(t, tb.entries, 0)

		// Let's test with an allocated map
		tb.entries = map[string]object.TreeEntry{}
		tb.Remove("blob")
		assert.Len(t, tb.entries, 0)
	})
}

func TestTreeBuilderWrite(t *testing.T) {
	t.Parallel()

	t.Run("should return d28c5ff92df044a522508a29cf3fad0b812f672f for empty tree", func(t *testing.T) {
		t.Parallel()

		_, r := newTestRepo(t)
		tree, err := r.NewTreeBuilder().Write()
		require.NoError(t, err)
		assert.Empty(t, tree.Entries())
		assert.Equal(t, "d28c5ff92df044a522508a29cf3fad0b812f672f", tree.ID().String())
	})

	t.Run("should persist tree sorted by name", func(t *testing.T) {
		t.Parallel()

		fs, r := newTestRepo(t)
		blob, tree, _ := newObjects(t, r)

		tb := r.NewTreeBuilder()
		require.NoError(t, tb.Insert("z", blob))
		require.NoError(t, tb.Insert("a", tree))
		newTree, err := tb.Write()
		require.NoError(t, err)

		entries := newTree.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "a", entries[0].Name)
		assert.Equal(t, "z", entries[1].Name)

		exists, err := afero.Exists(fs, ginternals.ObjectPath(r.Config, newTree.ID().String()))
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("building an existing tree should return the same data", func(t *testing.T) {
		t.Parallel()

		fs, r := newTestRepo(t)
		writeFiles(t, fs, r, map[string]string{
			"a.txt":     "a\n",
			"dir/b.txt": "b\n",
		})
		oid, err := r.WriteTree()
		require.NoError(t, err)
		tree, err := r.Tree(oid)
		require.NoError(t, err)

		newTree, err := r.NewTreeBuilderFromTree(tree).Write()
		require.NoError(t, err)
		assert.Equal(t, tree.ID().String(), newTree.ID().String())
		assert.Equal(t, tree.Entries(), newTree.Entries())
	})
}

func TestWriteTreeFromMap(t *testing.T) {
	t.Parallel()

	fs, r := newTestRepo(t)
	writeFiles(t, fs, r, map[string]string{
		"a.txt":         "a\n",
		"dir/b.txt":     "b\n",
		"dir/sub/c.txt": "c\n",
		"other/d.txt":   "d\n",
	})
	expected, err := r.WriteTree()
	require.NoError(t, err)
	files, err := r.WorkingTree()
	require.NoError(t, err)

	oid, err := r.WriteTreeFromMap(files)
	require.NoError(t, err)
	assert.Equal(t, expected, oid)
}
