package object_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/ginternals/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	helloBlobSHA = "a921a1ed31bcddeb5a51085e5d7dbdc7cf86b905"
	emptyTreeSHA = "d28c5ff92df044a522508a29cf3fad0b812f672f"
)

func TestNewTree(t *testing.T) {
	t.Parallel()

	blobID, err := ginternals.NewOidFromStr(helloBlobSHA)
	require.NoError(t, err)
	treeID, err := ginternals.NewOidFromStr(emptyTreeSHA)
	require.NoError(t, err)

	t.Run("should serialize entries in order", func(t *testing.T) {
		t.Parallel()

		tree, err := object.NewTree([]object.TreeEntry{
			{Name: "readme.md", ID: blobID, Type: object.TypeBlob},
			{Name: "my dir", ID: treeID, Type: object.TypeTree},
		})
		require.NoError(t, err)

		expected := "blob " + helloBlobSHA + " readme.md\n" +
			"tree " + emptyTreeSHA + " my dir\n"
		o := tree.ToObject()
		assert.Equal(t, object.TypeTree, o.Type())
		assert.Equal(t, expected, string(o.Bytes()))
		assert.Equal(t, o.ID(), tree.ID())
	})

	t.Run("empty tree", func(t *testing.T) {
		t.Parallel()

		tree, err := object.NewTree(nil)
		require.NoError(t, err)
		assert.Equal(t, emptyTreeSHA, tree.ID().String())
		assert.Empty(t, tree.Entries())
	})

	t.Run("Entries returns a copy", func(t *testing.T) {
		t.Parallel()

		tree, err := object.NewTree([]object.TreeEntry{
			{Name: "a", ID: blobID, Type: object.TypeBlob},
		})
		require.NoError(t, err)
		entries := tree.Entries()
		entries[0].Name = "b"
		assert.Equal(t, "a", tree.Entries()[0].Name)
	})

	t.Run("should reject invalid entries", func(t *testing.T) {
		t.Parallel()

		_, err := object.NewTree([]object.TreeEntry{
			{Name: "..", ID: treeID, Type: object.TypeTree},
		})
		require.ErrorIs(t, err, object.ErrUnexpectedFilename)

		_, err = object.NewTree([]object.TreeEntry{
			{Name: "a", ID: treeID, Type: object.TypeCommit},
		})
		require.ErrorIs(t, err, object.ErrTreeInvalid)
	})
}

func TestValidateEntryName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc    string
		name    string
		isValid bool
	}{
		{desc: "regular file", name: "main.go", isValid: true},
		{desc: "spaces are allowed", name: "my file.txt", isValid: true},
		{desc: "hidden files are allowed", name: ".gitignore", isValid: true},
		{desc: "empty", name: ""},
		{desc: "current dir", name: "."},
		{desc: "parent dir", name: ".."},
		{desc: "slash", name: "a/b"},
		{desc: "backslash is only forbidden when it's the path separator", name: `a\b`, isValid: filepath.Separator != '\\'},
		{desc: "new line", name: "a\nb"},
		{desc: "NUL char", name: "a\x00b"},
	}
	for i, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
			t.Parallel()

			err := object.ValidateEntryName(tc.name)
			if tc.isValid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, object.ErrUnexpectedFilename)
		})
	}
}

func TestNewTreeFromObject(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc            string
		content         string
		expectedEntries []object.TreeEntry
		expectedError   error
	}{
		{
			desc:            "valid tree",
			content:         "blob " + helloBlobSHA + " file with spaces.txt\ntree " + emptyTreeSHA + " dir\n",
			expectedEntries: []object.TreeEntry{{Name: "file with spaces.txt", Type: object.TypeBlob}, {Name: "dir", Type: object.TypeTree}},
		},
		{
			desc:            "empty tree",
			content:         "",
			expectedEntries: []object.TreeEntry{},
		},
		{
			desc:          "parent dir entry",
			content:       "tree " + emptyTreeSHA + " ..\n",
			expectedError: object.ErrUnexpectedFilename,
		},
		{
			desc:          "entry with a slash",
			content:       "blob " + helloBlobSHA + " ../../etc/passwd\n",
			expectedError: object.ErrUnexpectedFilename,
		},
		{
			desc:          "missing name",
			content:       "blob " + helloBlobSHA + "\n",
			expectedError: object.ErrTreeInvalid,
		},
		{
			desc:          "unterminated entry",
			content:       "blob " + helloBlobSHA + " file",
			expectedError: object.ErrTreeInvalid,
		},
		{
			desc:          "invalid sha",
			content:       "blob nope file\n",
			expectedError: object.ErrTreeInvalid,
		},
		{
			desc:          "unknown type",
			content:       "tag " + helloBlobSHA + " file\n",
			expectedError: object.ErrTreeInvalid,
		},
	}
	for i, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
			t.Parallel()

			tree, err := object.New(object.TypeTree, []byte(tc.content)).AsTree()
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			entries := tree.Entries()
			require.Len(t, entries, len(tc.expectedEntries))
			for i, e := range entries {
				assert.Equal(t, tc.expectedEntries[i].Name, e.Name)
				assert.Equal(t, tc.expectedEntries[i].Type, e.Type)
			}
		})
	}

	t.Run("parsing a blob should fail", func(t *testing.T) {
		t.Parallel()

		_, err := object.NewTreeFromObject(object.New(object.TypeBlob, []byte{}))
		require.ErrorIs(t, err, object.ErrTypeMismatch)
	})
}
