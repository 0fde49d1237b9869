// Package worktree contains methods to reconcile the working tree of
// a repository with the object database
package worktree

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/ginternals/config"
	"github.com/Nivl/ugit/ginternals/object"
	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/xerrors"
)

// ErrPathInvalid is returned when a path cannot be written in the
// working tree
var ErrPathInvalid = errors.New("invalid path")

// ObjectWriter represents an object that can persist objects
type ObjectWriter interface {
	WriteObject(o *object.Object) (ginternals.Oid, error)
}

// Worktree represents the working tree of a repository
type Worktree struct {
	fs      afero.Fs
	root    string
	ignorer *Ignorer
	// metadata contains the absolute paths of the repository's
	// directories that live inside the working tree
	metadata []string

	precomposeUnicode bool
}

// New returns the Worktree described by the config
func New(cfg *config.Config) *Worktree {
	w := &Worktree{
		fs:      cfg.FS,
		root:    cfg.WorkTreePath,
		ignorer: NewIgnorer(),
	}
	for _, dir := range []string{cfg.GitDirPath, cfg.ObjectDirPath} {
		if dir != "" && isInside(cfg.WorkTreePath, dir) {
			w.metadata = append(w.metadata, filepath.Clean(dir))
		}
	}
	if files := cfg.FromFiles(); files != nil {
		w.ignorer = NewIgnorer(files.IgnoredNames()...)
		w.precomposeUnicode = files.PrecomposeUnicode()
	}
	return w
}

// isInside returns whether p is root or one of its descendants
func isInside(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// isExcluded returns whether the absolute path p is part of the
// repository's metadata, or matches the ignore rules
func (w *Worktree) isExcluded(p, rel string) bool {
	for _, dir := range w.metadata {
		if isInside(dir, p) {
			return true
		}
	}
	return w.ignorer.IsIgnored(rel)
}

// name returns the name to store for a file
func (w *Worktree) name(n string) string {
	if w.precomposeUnicode {
		return norm.NFC.String(n)
	}
	return n
}

// relPath returns the slash separated path of p, relative to the root
func (w *Worktree) relPath(p string) (string, error) {
	rel, err := filepath.Rel(w.root, p)
	if err != nil {
		return "", fmt.Errorf("could not get the relative path of %s: %w", p, err)
	}
	return filepath.ToSlash(rel), nil
}

// WriteTree stores the content of the working tree in the odb and
// returns the ID of the root tree.
// The entries of each tree are in lexical order, ignored paths and
// symlinks are left out
func (w *Worktree) WriteTree(store ObjectWriter) (ginternals.Oid, error) {
	return w.writeTree(store, w.root)
}

func (w *Worktree) writeTree(store ObjectWriter, dir string) (ginternals.Oid, error) {
	infos, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not read %s: %w", dir, err)
	}

	entries := make([]object.TreeEntry, 0, len(infos))
	for _, info := range infos {
		p := filepath.Join(dir, info.Name())
		rel, err := w.relPath(p)
		if err != nil {
			return ginternals.NullOid, err
		}
		if w.isExcluded(p, rel) {
			continue
		}
		if info.Mode()&os.ModeSymlink != 0 {
			slog.Debug("skipping symlink", "path", rel)
			continue
		}

		entry := object.TreeEntry{
			Name: w.name(info.Name()),
		}
		switch {
		case info.IsDir():
			entry.Type = object.TypeTree
			entry.ID, err = w.writeTree(store, p)
		case info.Mode().IsRegular():
			entry.Type = object.TypeBlob
			entry.ID, err = w.writeBlob(store, p)
		default:
			slog.Debug("skipping irregular file", "path", rel, "mode", info.Mode().String())
			continue
		}
		if err != nil {
			return ginternals.NullOid, err
		}
		entries = append(entries, entry)
	}

	tree, err := object.NewTree(entries)
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not create the tree of %s: %w", dir, err)
	}
	oid, err := store.WriteObject(tree.ToObject())
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not store the tree of %s: %w", dir, err)
	}
	return oid, nil
}

func (w *Worktree) writeBlob(store ObjectWriter, p string) (ginternals.Oid, error) {
	data, err := afero.ReadFile(w.fs, p)
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not read %s: %w", p, err)
	}
	oid, err := store.WriteObject(object.NewBlobFromContent(data).ToObject())
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not store %s: %w", p, err)
	}
	return oid, nil
}

// Capture stores all the files of the working tree in the odb and
// returns a map of their slash separated path to the ID of their blob.
// Ignored paths and symlinks are left out
func (w *Worktree) Capture(store ObjectWriter) (map[string]ginternals.Oid, error) {
	out := map[string]ginternals.Oid{}
	err := afero.Walk(w.fs, w.root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p == w.root {
			return nil
		}
		rel, err := w.relPath(p)
		if err != nil {
			return err
		}
		if w.isExcluded(p, rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		oid, err := w.writeBlob(store, p)
		if err != nil {
			return err
		}
		out[w.name(rel)] = oid
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("could not capture the working tree: %w", err)
	}
	return out, nil
}

// Empty removes all the non-ignored files of the working tree, then
// all the directories that are empty.
// Directories that still contain ignored files are kept
func (w *Worktree) Empty() error {
	dirs := []string{}
	err := afero.Walk(w.fs, w.root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p == w.root {
			return nil
		}
		rel, err := w.relPath(p)
		if err != nil {
			return err
		}
		if w.isExcluded(p, rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			dirs = append(dirs, p)
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return nil
		}
		if err = w.fs.Remove(p); err != nil {
			return xerrors.Errorf("could not remove %s: %w", rel, err)
		}
		return nil
	})
	if err != nil {
		return xerrors.Errorf("could not empty the working tree: %w", err)
	}

	// we remove the deepest directories first so their parents can
	// be removed too
	sort.Slice(dirs, func(i, j int) bool {
		return len(dirs[i]) > len(dirs[j])
	})
	for _, d := range dirs {
		isEmpty, err := afero.IsEmpty(w.fs, d)
		if err != nil {
			return xerrors.Errorf("could not check %s: %w", d, err)
		}
		if !isEmpty {
			continue
		}
		if err = w.fs.Remove(d); err != nil {
			return xerrors.Errorf("could not remove %s: %w", d, err)
		}
	}
	return nil
}

// Materialize empties the working tree and writes the given files.
// The keys of the map are slash separated paths relative to the root
// of the working tree
func (w *Worktree) Materialize(files map[string][]byte) error {
	if err := w.Empty(); err != nil {
		return err
	}

	for rel, content := range files {
		p, err := w.systemPath(rel)
		if err != nil {
			return err
		}
		if err = w.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return xerrors.Errorf("could not create the parent directory of %s: %w", rel, err)
		}
		if err = afero.WriteFile(w.fs, p, content, 0o644); err != nil {
			return xerrors.Errorf("could not write %s: %w", rel, err)
		}
	}
	return nil
}

// systemPath returns the absolute path of a slash separated path
// relative to the root.
// ErrPathInvalid is returned if the path would escape the root or
// targets an ignored location
func (w *Worktree) systemPath(rel string) (string, error) {
	if rel == "" || strings.HasPrefix(rel, "/") {
		return "", xerrors.Errorf("%q: %w", rel, ErrPathInvalid)
	}
	for _, part := range strings.Split(rel, "/") {
		if part == "" || part == "." || part == ".." {
			return "", xerrors.Errorf("%q: %w", rel, ErrPathInvalid)
		}
	}
	p := filepath.Join(w.root, filepath.FromSlash(rel))
	if w.isExcluded(p, rel) {
		return "", xerrors.Errorf("%q is ignored: %w", rel, ErrPathInvalid)
	}
	return p, nil
}
