package ugit

import (
	"context"
	"log/slog"
	"sort"

	"github.com/Nivl/ugit/difftool"
	"github.com/Nivl/ugit/ginternals"
	"golang.org/x/xerrors"
)

// MergeResult contains the outcome of a merge
type MergeResult struct {
	// Base is the common ancestor of HEAD and the merged commit
	Base ginternals.Oid
	// UpToDate is true if the merged commit was already part of HEAD's
	// history. Nothing has been changed.
	UpToDate bool
	// FastForward is true if HEAD has been moved to the merged commit
	// without creating a merge
	FastForward bool
	// Conflicts contains the paths of the files that contain conflict
	// markers, sorted
	Conflicts []string
}

// MergeBase returns the first ancestor of b that is also an
// ancestor of a
func (r *Repository) MergeBase(a, b ginternals.Oid) (ginternals.Oid, error) {
	ancestors := map[ginternals.Oid]struct{}{}
	it := r.Ancestors(a)
	for it.Next() {
		ancestors[it.Oid()] = struct{}{}
	}
	if err := it.Err(); err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not walk %s: %w", a.String(), err)
	}

	it = r.Ancestors(b)
	for it.Next() {
		if _, ok := ancestors[it.Oid()]; ok {
			return it.Oid(), nil
		}
	}
	if err := it.Err(); err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not walk %s: %w", b.String(), err)
	}
	return ginternals.NullOid, ErrNoCommonAncestor
}

// Merge merges the given commit into HEAD.
//   - If the commit is already part of HEAD, nothing is done
//   - If HEAD is an ancestor of the commit, HEAD is fast-forwarded
//   - Otherwise the trees are merged into the working tree and
//     MERGE_HEAD is set. The merge is recorded by the next commit
func (r *Repository) Merge(ctx context.Context, other ginternals.Oid) (*MergeResult, error) {
	head, err := r.dotGit.Reference(ginternals.Head, true)
	if err != nil {
		return nil, xerrors.Errorf("could not get HEAD: %w", err)
	}
	if head.IsUnborn() {
		return nil, ErrUnbornHead
	}
	otherCommit, err := r.GetCommit(other)
	if err != nil {
		return nil, xerrors.Errorf("could not get commit %s: %w", other.String(), err)
	}

	base, err := r.MergeBase(other, head.Target())
	if err != nil {
		return nil, err
	}
	res := &MergeResult{Base: base}

	switch base {
	case other:
		// merging would only produce HEAD's tree, so no MERGE_HEAD is
		// written and no merge commit will follow
		res.UpToDate = true
		return res, nil
	case head.Target():
		if err = r.ReadTree(otherCommit.TreeID()); err != nil {
			return nil, err
		}
		if err = r.dotGit.WriteReference(ginternals.NewReference(ginternals.Head, other), true); err != nil {
			return nil, xerrors.Errorf("could not update HEAD: %w", err)
		}
		slog.Debug("fast-forward", "from", head.Target().String(), "to", other.String())
		res.FastForward = true
		return res, nil
	}

	trees := make([]TreeMap, 0, 3)
	for _, oid := range []ginternals.Oid{base, head.Target(), other} {
		c, err := r.GetCommit(oid)
		if err != nil {
			return nil, xerrors.Errorf("could not get commit %s: %w", oid.String(), err)
		}
		t, err := r.FlattenTree(c.TreeID(), "")
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	files, conflicts, err := r.mergeTrees(ctx, trees[0], trees[1], trees[2])
	if err != nil {
		return nil, err
	}

	if err = r.dotGit.WriteReference(ginternals.NewReference(ginternals.MergeHead, other), false); err != nil {
		return nil, xerrors.Errorf("could not write %s: %w", ginternals.MergeHead, err)
	}
	if err = r.wt.Materialize(files); err != nil {
		return nil, xerrors.Errorf("could not update the working tree: %w", err)
	}
	slog.Debug("merged", "base", base.String(), "conflicts", len(conflicts))
	res.Conflicts = conflicts
	return res, nil
}

// mergeTrees merges the files of 3 trees and returns the content of
// the merged files, and the paths that contain conflicts
func (r *Repository) mergeTrees(ctx context.Context, base, head, other TreeMap) (files map[string][]byte, conflicts []string, err error) {
	files = map[string][]byte{}
	conflicts = []string{}
	for p, ids := range compareTrees(base, head, other) {
		baseID, headID, otherID := ids[0], ids[1], ids[2]

		var picked ginternals.Oid
		switch {
		case headID == otherID, baseID == otherID:
			picked = headID
		case baseID == headID:
			picked = otherID
		default:
			out, err := r.mergeFile(ctx, p, baseID, headID, otherID)
			if err != nil {
				return nil, nil, err
			}
			files[p] = out.Content
			if out.Conflicts {
				conflicts = append(conflicts, p)
			}
			continue
		}

		// the file has been removed
		if picked.IsZero() {
			continue
		}
		data, err := r.blobContent(picked)
		if err != nil {
			return nil, nil, err
		}
		files[p] = data
	}
	sort.Strings(conflicts)
	return files, conflicts, nil
}

func (r *Repository) mergeFile(ctx context.Context, p string, baseID, headID, otherID ginternals.Oid) (*difftool.MergeOutput, error) {
	in := difftool.MergeInput{Path: p}
	var err error
	if in.Base, err = r.blobContent(baseID); err != nil {
		return nil, err
	}
	if in.Head, err = r.blobContent(headID); err != nil {
		return nil, err
	}
	if in.MergeHead, err = r.blobContent(otherID); err != nil {
		return nil, err
	}
	out, err := r.mergeTool.Merge(ctx, in)
	if err != nil {
		return nil, xerrors.Errorf("could not merge %s: %w", p, err)
	}
	return out, nil
}
