package ugit

import (
	"path"
	"sort"
	"strings"

	"github.com/Nivl/ugit/backend"
	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/ginternals/object"
	"golang.org/x/xerrors"
)

// TreeBuilder is used to build trees
type TreeBuilder struct {
	Backend *backend.Backend
	entries map[string]object.TreeEntry
}

// NewTreeBuilder create a new empty tree builder
func (r *Repository) NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{
		Backend: r.dotGit,
	}
}

// NewTreeBuilderFromTree create a new tree builder containing the
// entries of another tree
func (r *Repository) NewTreeBuilderFromTree(t *object.Tree) *TreeBuilder {
	entries := map[string]object.TreeEntry{}
	for _, e := range t.Entries() {
		entries[e.Name] = e
	}

	return &TreeBuilder{
		Backend: r.dotGit,
		entries: entries,
	}
}

// Insert inserts a new object in a tree.
// The object must exist and be a blob or a tree
func (tb *TreeBuilder) Insert(name string, oid ginternals.Oid) error {
	if err := object.ValidateEntryName(name); err != nil {
		return err
	}

	o, err := tb.Backend.Object(oid)
	if err != nil {
		return xerrors.Errorf("cannot verify object: %w", err)
	}
	if o.Type() != object.TypeBlob && o.Type() != object.TypeTree {
		return xerrors.Errorf("unexpected object %s: %w", o.Type().String(), object.ErrObjectInvalid)
	}

	if tb.entries == nil {
		tb.entries = map[string]object.TreeEntry{}
	}
	tb.entries[name] = object.TreeEntry{
		Name: name,
		ID:   oid,
		Type: o.Type(),
	}
	return nil
}

// Remove removes an object from tree
func (tb *TreeBuilder) Remove(name string) {
	if tb.entries == nil {
		return
	}
	delete(tb.entries, name)
}

// Write creates and persists a new Tree object
func (tb *TreeBuilder) Write() (*object.Tree, error) {
	// We need to order all our entries alphabetically
	names := make([]string, 0, len(tb.entries))
	for name := range tb.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]object.TreeEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, tb.entries[name])
	}

	t, err := object.NewTree(entries)
	if err != nil {
		return nil, xerrors.Errorf("could not create the tree: %w", err)
	}
	if _, err := tb.Backend.WriteObject(t.ToObject()); err != nil {
		return nil, xerrors.Errorf("could not write the object to the odb: %w", err)
	}
	return t, nil
}

// WriteTreeFromMap writes the nested trees needed to store the given
// files, and returns the ID of the root tree.
// All the blobs must already be in the odb
func (r *Repository) WriteTreeFromMap(files TreeMap) (ginternals.Oid, error) {
	return r.writeTreeFromMap(files, "")
}

func (r *Repository) writeTreeFromMap(files TreeMap, dir string) (ginternals.Oid, error) {
	tb := r.NewTreeBuilder()
	subDirs := map[string]struct{}{}
	for p, oid := range files {
		rel := p
		if dir != "" {
			if !strings.HasPrefix(p, dir+"/") {
				continue
			}
			rel = strings.TrimPrefix(p, dir+"/")
		}
		if i := strings.IndexByte(rel, '/'); i >= 0 {
			subDirs[rel[:i]] = struct{}{}
			continue
		}
		if err := tb.Insert(rel, oid); err != nil {
			return ginternals.NullOid, xerrors.Errorf("could not add %s: %w", p, err)
		}
	}

	for name := range subDirs {
		oid, err := r.writeTreeFromMap(files, path.Join(dir, name))
		if err != nil {
			return ginternals.NullOid, err
		}
		if err := tb.Insert(name, oid); err != nil {
			return ginternals.NullOid, xerrors.Errorf("could not add %s: %w", name, err)
		}
	}

	t, err := tb.Write()
	if err != nil {
		return ginternals.NullOid, err
	}
	return t.ID(), nil
}
