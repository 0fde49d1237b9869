package ugit

import (
	"log/slog"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/ginternals/object"
	"golang.org/x/xerrors"
)

// Commit snapshots the working tree and creates a commit on top of
// HEAD. If a merge is in progress, MERGE_HEAD becomes the second
// parent and is removed.
// HEAD (or the branch it points to) is moved to the new commit
func (r *Repository) Commit(message string) (*object.Commit, error) {
	treeID, err := r.WriteTree()
	if err != nil {
		return nil, err
	}

	parents := []ginternals.Oid{}
	for _, name := range []string{ginternals.Head, ginternals.MergeHead} {
		ref, err := r.dotGit.Reference(name, true)
		if err != nil {
			return nil, xerrors.Errorf("could not get %s: %w", name, err)
		}
		if !ref.IsUnborn() {
			parents = append(parents, ref.Target())
		}
	}

	c, err := r.CommitWithTree(treeID, parents, message)
	if err != nil {
		return nil, err
	}

	if err = r.dotGit.WriteReference(ginternals.NewReference(ginternals.Head, c.ID()), true); err != nil {
		return nil, xerrors.Errorf("could not update HEAD: %w", err)
	}
	if err = r.dotGit.DeleteReference(ginternals.MergeHead); err != nil {
		return nil, xerrors.Errorf("could not remove %s: %w", ginternals.MergeHead, err)
	}
	slog.Debug("commit created", "id", c.ID().String(), "parents", len(parents))
	return c, nil
}

// CommitWithTree creates and stores a commit using the given tree and
// parents. No references are updated
func (r *Repository) CommitWithTree(treeID ginternals.Oid, parents []ginternals.Oid, message string) (*object.Commit, error) {
	if _, err := r.dotGit.ObjectOfType(treeID, object.TypeTree); err != nil {
		return nil, xerrors.Errorf("invalid tree %s: %w", treeID.String(), err)
	}
	c := object.NewCommit(treeID, parents, message)
	if _, err := r.dotGit.WriteObject(c.ToObject()); err != nil {
		return nil, xerrors.Errorf("could not write the commit: %w", err)
	}
	return c, nil
}

// GetCommit returns the commit matching the given ID
func (r *Repository) GetCommit(oid ginternals.Oid) (*object.Commit, error) {
	o, err := r.dotGit.ObjectOfType(oid, object.TypeCommit)
	if err != nil {
		return nil, err
	}
	return o.AsCommit()
}
