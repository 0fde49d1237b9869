package smoke_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/internal/testhelper/exe"
	"github.com/stretchr/testify/require"
)

func TestMergeWithExternalTools(t *testing.T) {
	t.Parallel()
	exe.RequireBinaries(t, "diff", "diff3")

	d, r := newRepo(t)
	write := func(name, content string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(d, name), []byte(content), 0o644))
	}
	read := func(name string) string {
		t.Helper()
		data, err := os.ReadFile(filepath.Join(d, name))
		require.NoError(t, err)
		return string(data)
	}

	write("list.txt", "1\n2\n3\n4\n5\n6\n7\n8\n")
	write("conflict.txt", "base\n")
	base, err := r.Commit("base")
	require.NoError(t, err)
	require.NoError(t, r.CreateBranch("feature", base.ID()))

	write("list.txt", "one\n2\n3\n4\n5\n6\n7\n8\n")
	write("conflict.txt", "head\n")
	head, err := r.Commit("head")
	require.NoError(t, err)

	require.NoError(t, r.Checkout("feature"))
	write("list.txt", "1\n2\n3\n4\n5\n6\n7\neight\n")
	write("conflict.txt", "other\n")
	other, err := r.Commit("other")
	require.NoError(t, err)

	require.NoError(t, r.Checkout(ginternals.Main))
	res, err := r.Merge(context.Background(), other.ID())
	require.NoError(t, err)
	require.Equal(t, []string{"conflict.txt"}, res.Conflicts)
	require.Equal(t, "one\n2\n3\n4\n5\n6\n7\neight\n", read("list.txt"))
	conflict := read("conflict.txt")
	require.True(t, strings.Contains(conflict, "<<<<<<< HEAD\nhead\n"), conflict)
	require.True(t, strings.Contains(conflict, ">>>>>>> MERGE_HEAD\n"), conflict)

	// solve the conflict and record the merge
	write("conflict.txt", "solved\n")
	merge, err := r.Commit("merge")
	require.NoError(t, err)
	require.Equal(t, []ginternals.Oid{head.ID(), other.ID()}, merge.ParentIDs())

	from, err := r.CommitTree(head.ID())
	require.NoError(t, err)
	to, err := r.CommitTree(merge.ID())
	require.NoError(t, err)
	diff, err := r.DiffTrees(context.Background(), from, to)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(diff), "+solved\n"), string(diff))
	require.True(t, strings.Contains(string(diff), "+eight\n"), string(diff))
}
