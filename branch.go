package ugit

import (
	"sort"

	"github.com/Nivl/ugit/ginternals"
	"golang.org/x/xerrors"
)

// CreateBranch creates a new branch targeting the given commit.
// ginternals.ErrRefExists is returned if the branch already exists
func (r *Repository) CreateBranch(name string, oid ginternals.Oid) error {
	return r.createRef(ginternals.LocalBranchFullName(name), oid)
}

// CreateTag creates a new tag targeting the given commit.
// ginternals.ErrRefExists is returned if the tag already exists
func (r *Repository) CreateTag(name string, oid ginternals.Oid) error {
	return r.createRef(ginternals.LocalTagFullName(name), oid)
}

func (r *Repository) createRef(fullName string, oid ginternals.Oid) error {
	if !ginternals.IsRefNameValid(fullName) {
		return xerrors.Errorf("%q: %w", fullName, ginternals.ErrRefNameInvalid)
	}
	if _, err := r.GetCommit(oid); err != nil {
		return xerrors.Errorf("could not get commit %s: %w", oid.String(), err)
	}
	return r.dotGit.WriteReferenceSafe(ginternals.NewReference(fullName, oid))
}

// BranchName returns the short name of the branch HEAD points to.
// An empty string is returned when HEAD is detached
func (r *Repository) BranchName() (string, error) {
	head, err := r.dotGit.Reference(ginternals.Head, false)
	if err != nil {
		return "", xerrors.Errorf("could not get HEAD: %w", err)
	}
	if !head.IsSymbolic() || !ginternals.IsLocalBranch(head.SymbolicTarget()) {
		return "", nil
	}
	return ginternals.LocalBranchShortName(head.SymbolicTarget()), nil
}

// Branches returns the short names of all the branches, sorted
func (r *Repository) Branches() ([]string, error) {
	names := []string{}
	err := r.dotGit.WalkReferences(ginternals.LocalBranchFullName("")+"/", false, func(ref *ginternals.Reference) error {
		names = append(names, ginternals.LocalBranchShortName(ref.Name()))
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("could not list the branches: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Tags returns the short names of all the tags, sorted
func (r *Repository) Tags() ([]string, error) {
	names := []string{}
	err := r.dotGit.WalkReferences(ginternals.LocalTagFullName("")+"/", false, func(ref *ginternals.Reference) error {
		names = append(names, ginternals.LocalTagShortName(ref.Name()))
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("could not list the tags: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// RefsByOid returns the names of the references that target each
// commit. Symbolic references are followed
func (r *Repository) RefsByOid() (map[ginternals.Oid][]string, error) {
	out := map[ginternals.Oid][]string{}
	err := r.dotGit.WalkReferences("", false, func(ref *ginternals.Reference) error {
		target := ref.Target()
		if ref.IsSymbolic() {
			resolved, err := r.dotGit.Reference(ref.Name(), true)
			if err != nil {
				return err
			}
			target = resolved.Target()
		}
		if !target.IsZero() {
			out[target] = append(out[target], ref.Name())
		}
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("could not list the references: %w", err)
	}
	return out, nil
}
