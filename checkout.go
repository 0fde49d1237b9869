package ugit

import (
	"github.com/Nivl/ugit/ginternals"
	"golang.org/x/xerrors"
)

// Checkout replaces the working tree by the tree of the commit
// targeted by name, and moves HEAD.
// If name is a branch, HEAD will point to the branch, otherwise HEAD
// will be detached
func (r *Repository) Checkout(name string) error {
	oid, err := r.ResolveName(name)
	if err != nil {
		return err
	}
	c, err := r.GetCommit(oid)
	if err != nil {
		return xerrors.Errorf("could not get commit %s: %w", oid.String(), err)
	}
	if err = r.ReadTree(c.TreeID()); err != nil {
		return err
	}

	isBranch, err := r.isBranch(name)
	if err != nil {
		return err
	}
	head := ginternals.NewReference(ginternals.Head, oid)
	if isBranch {
		head = ginternals.NewSymbolicReference(ginternals.Head, ginternals.LocalBranchFullName(name))
	}
	if err = r.dotGit.WriteReference(head, false); err != nil {
		return xerrors.Errorf("could not update HEAD: %w", err)
	}
	return nil
}

// Reset moves HEAD, or the branch HEAD points to, to the given
// commit. The working tree is left untouched
func (r *Repository) Reset(oid ginternals.Oid) error {
	if _, err := r.GetCommit(oid); err != nil {
		return xerrors.Errorf("could not get commit %s: %w", oid.String(), err)
	}
	if err := r.dotGit.WriteReference(ginternals.NewReference(ginternals.Head, oid), true); err != nil {
		return xerrors.Errorf("could not update HEAD: %w", err)
	}
	return nil
}

func (r *Repository) isBranch(name string) (bool, error) {
	fullName := ginternals.LocalBranchFullName(name)
	if !ginternals.IsRefNameValid(fullName) {
		return false, nil
	}
	ref, err := r.dotGit.Reference(fullName, true)
	if err != nil {
		return false, xerrors.Errorf("could not get %s: %w", fullName, err)
	}
	return !ref.IsUnborn(), nil
}
