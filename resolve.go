package ugit

import (
	"github.com/Nivl/ugit/ginternals"
	"golang.org/x/xerrors"
)

// ResolveName returns the commit ID targeted by a name.
// A name is, in order:
//   - "@" or a reference name (HEAD, refs/heads/main, ...)
//   - a reference relative to refs/ (heads/main, tags/v1)
//   - a tag name
//   - a branch name
//   - a full hex ID
func (r *Repository) ResolveName(name string) (ginternals.Oid, error) {
	if name == ginternals.HeadAlias {
		name = ginternals.Head
	}

	candidates := []string{
		name,
		ginternals.RefFullName(name),
		ginternals.LocalTagFullName(name),
		ginternals.LocalBranchFullName(name),
	}
	for _, c := range candidates {
		if !ginternals.IsRefNameValid(c) {
			continue
		}
		ref, err := r.dotGit.Reference(c, true)
		if err != nil {
			return ginternals.NullOid, xerrors.Errorf("could not resolve %s: %w", c, err)
		}
		if !ref.IsUnborn() {
			return ref.Target(), nil
		}
	}

	if oid, err := ginternals.NewOidFromStr(name); err == nil {
		return oid, nil
	}
	return ginternals.NullOid, xerrors.Errorf("%q: %w", name, ErrUnknownName)
}
