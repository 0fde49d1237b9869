package ugit

import (
	"path"
	"sort"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/ginternals/object"
	"golang.org/x/xerrors"
)

// TreeMap is a flat representation of a tree: it maps the
// slash-separated path of every file to the ID of its blob
type TreeMap map[string]ginternals.Oid

// Paths returns the paths of the map, sorted
func (m TreeMap) Paths() []string {
	out := make([]string, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// WriteTree stores the content of the working tree and returns the
// ID of its root tree
func (r *Repository) WriteTree() (ginternals.Oid, error) {
	oid, err := r.wt.WriteTree(r.dotGit)
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not write the working tree: %w", err)
	}
	return oid, nil
}

// Tree returns the tree matching the given ID
func (r *Repository) Tree(oid ginternals.Oid) (*object.Tree, error) {
	o, err := r.dotGit.ObjectOfType(oid, object.TypeTree)
	if err != nil {
		return nil, err
	}
	return o.AsTree()
}

// FlattenTree returns all the files reachable from the given tree.
// base is prepended to every path
func (r *Repository) FlattenTree(oid ginternals.Oid, base string) (TreeMap, error) {
	out := TreeMap{}
	if err := r.flattenTree(oid, base, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) flattenTree(oid ginternals.Oid, base string, out TreeMap) error {
	t, err := r.Tree(oid)
	if err != nil {
		return xerrors.Errorf("could not get tree %s: %w", oid.String(), err)
	}
	for _, e := range t.Entries() {
		p := path.Join(base, e.Name)
		switch e.Type {
		case object.TypeBlob:
			out[p] = e.ID
		case object.TypeTree:
			if err := r.flattenTree(e.ID, p, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadTree replaces the content of the working tree by the content
// of the given tree. Ignored files are left untouched
func (r *Repository) ReadTree(oid ginternals.Oid) error {
	files, err := r.FlattenTree(oid, "")
	if err != nil {
		return err
	}
	return r.materialize(files)
}

func (r *Repository) materialize(files TreeMap) error {
	contents := make(map[string][]byte, len(files))
	for p, oid := range files {
		data, err := r.blobContent(oid)
		if err != nil {
			return err
		}
		contents[p] = data
	}
	if err := r.wt.Materialize(contents); err != nil {
		return xerrors.Errorf("could not update the working tree: %w", err)
	}
	return nil
}

// WorkingTree returns the files of the working tree. The content of
// every file is stored as a blob
func (r *Repository) WorkingTree() (TreeMap, error) {
	files, err := r.wt.Capture(r.dotGit)
	if err != nil {
		return nil, xerrors.Errorf("could not read the working tree: %w", err)
	}
	return TreeMap(files), nil
}

// compareTrees returns, for every path present in at least one tree,
// the ID of the file in each tree. A missing file has a null ID
func compareTrees(trees ...TreeMap) map[string][]ginternals.Oid {
	out := map[string][]ginternals.Oid{}
	for i, t := range trees {
		for p, oid := range t {
			if _, ok := out[p]; !ok {
				out[p] = make([]ginternals.Oid, len(trees))
			}
			out[p][i] = oid
		}
	}
	return out
}
