package ugit

import (
	"context"
	"sort"

	"github.com/Nivl/ugit/ginternals"
	"golang.org/x/xerrors"
)

// FileAction represents what happened to a file between two trees
type FileAction string

// List of actions
const (
	ActionNew      FileAction = "new file"
	ActionModified FileAction = "modified"
	ActionDeleted  FileAction = "deleted"
)

// FileChange represents a file that changed between two trees
type FileChange struct {
	Path   string
	Action FileAction
}

// Status represents the state of the repository
type Status struct {
	// Branch is the name of the current branch. Empty when HEAD is
	// detached
	Branch string
	// Head is the commit targeted by HEAD. Null if HEAD is unborn
	Head ginternals.Oid
	// MergeHead is the commit being merged. Null if no merge is in
	// progress
	MergeHead ginternals.Oid
	// Changes contains the changes between HEAD and the working tree,
	// sorted by path
	Changes []FileChange
}

// Status returns the state of the repository and the changes made to
// the working tree
func (r *Repository) Status() (*Status, error) {
	branch, err := r.BranchName()
	if err != nil {
		return nil, err
	}
	head, err := r.dotGit.Reference(ginternals.Head, true)
	if err != nil {
		return nil, xerrors.Errorf("could not get HEAD: %w", err)
	}
	mergeHead, err := r.dotGit.Reference(ginternals.MergeHead, true)
	if err != nil {
		return nil, xerrors.Errorf("could not get %s: %w", ginternals.MergeHead, err)
	}

	headTree := TreeMap{}
	if !head.IsUnborn() {
		if headTree, err = r.CommitTree(head.Target()); err != nil {
			return nil, err
		}
	}
	wt, err := r.WorkingTree()
	if err != nil {
		return nil, err
	}

	return &Status{
		Branch:    branch,
		Head:      head.Target(),
		MergeHead: mergeHead.Target(),
		Changes:   ChangedFiles(headTree, wt),
	}, nil
}

// CommitTree returns all the files of the given commit
func (r *Repository) CommitTree(oid ginternals.Oid) (TreeMap, error) {
	c, err := r.GetCommit(oid)
	if err != nil {
		return nil, xerrors.Errorf("could not get commit %s: %w", oid.String(), err)
	}
	return r.FlattenTree(c.TreeID(), "")
}

// ChangedFiles returns the files that differ between 2 trees, sorted
// by path
func ChangedFiles(from, to TreeMap) []FileChange {
	changes := []FileChange{}
	for p, ids := range compareTrees(from, to) {
		switch {
		case ids[0] == ids[1]:
			continue
		case ids[0].IsZero():
			changes = append(changes, FileChange{Path: p, Action: ActionNew})
		case ids[1].IsZero():
			changes = append(changes, FileChange{Path: p, Action: ActionDeleted})
		default:
			changes = append(changes, FileChange{Path: p, Action: ActionModified})
		}
	}
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
	return changes
}

// DiffTrees returns the unified diff of every file that differs
// between 2 trees
func (r *Repository) DiffTrees(ctx context.Context, from, to TreeMap) ([]byte, error) {
	out := []byte{}
	for _, change := range ChangedFiles(from, to) {
		a, err := r.blobContent(from[change.Path])
		if err != nil {
			return nil, err
		}
		b, err := r.blobContent(to[change.Path])
		if err != nil {
			return nil, err
		}
		diff, err := r.diffTool.Diff(ctx, change.Path, a, b)
		if err != nil {
			return nil, xerrors.Errorf("could not diff %s: %w", change.Path, err)
		}
		out = append(out, diff...)
	}
	return out, nil
}
