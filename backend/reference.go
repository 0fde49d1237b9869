package backend

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nivl/ugit/ginternals"
	"github.com/spf13/afero"
)

// Reference returns a stored reference from its name.
// A reference that doesn't exist is returned unborn.
// When deref is true, symbolic references are followed and the last
// reference of the chain is returned.
// This method can be called concurrently
func (b *Backend) Reference(name string, deref bool) (*ginternals.Reference, error) {
	b.refMu.RLock()
	defer b.refMu.RUnlock()

	return b.referenceUnsafe(name, deref)
}

func (b *Backend) referenceUnsafe(name string, deref bool) (*ginternals.Reference, error) {
	return ginternals.ResolveReference(name, b.readReference, deref)
}

// readReference returns the raw content of a reference.
// Directories, like refs/heads, are not references
func (b *Backend) readReference(name string) ([]byte, error) {
	p := b.systemPath(name)
	info, err := b.fs.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf(`ref "%s": %w`, name, ginternals.ErrRefNotFound)
		}
		return nil, fmt.Errorf(`could not stat ref "%s": %w`, name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf(`ref "%s" is a directory: %w`, name, ginternals.ErrRefNotFound)
	}
	data, err := afero.ReadFile(b.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf(`ref "%s": %w`, name, ginternals.ErrRefNotFound)
		}
		return nil, fmt.Errorf(`could not read ref "%s": %w`, name, err)
	}
	return data, nil
}

// systemPath returns a path from a ref name
// Ex.: On windows refs/heads/main would return refs\heads\main
func (b *Backend) systemPath(name string) string {
	return ginternals.RefPath(b.config, name)
}

// WriteReference writes the given reference on disk. If the
// reference already exists it will be overwritten.
// When deref is true and the reference on disk is symbolic, the
// last reference of the chain is updated instead.
// This method can be called concurrently
func (b *Backend) WriteReference(ref *ginternals.Reference, deref bool) error {
	b.refMu.Lock()
	defer b.refMu.Unlock()

	if deref {
		current, err := b.referenceUnsafe(ref.Name(), true)
		if err != nil {
			return fmt.Errorf("could not resolve %s: %w", ref.Name(), err)
		}
		if current.Name() != ref.Name() {
			ref = retarget(current.Name(), ref)
		}
	}
	return b.writeReferenceUnsafe(ref)
}

// retarget returns a copy of ref with a different name
func retarget(name string, ref *ginternals.Reference) *ginternals.Reference {
	if ref.IsSymbolic() {
		return ginternals.NewSymbolicReference(name, ref.SymbolicTarget())
	}
	return ginternals.NewReference(name, ref.Target())
}

// WriteReferenceSafe writes the given reference on disk.
// ginternals.ErrRefExists is returned if the reference already exists
// This method can be called concurrently
func (b *Backend) WriteReferenceSafe(ref *ginternals.Reference) error {
	b.refMu.Lock()
	defer b.refMu.Unlock()

	exists, err := afero.Exists(b.fs, b.systemPath(ref.Name()))
	if err != nil {
		return fmt.Errorf("could not check if %s exists: %w", ref.Name(), err)
	}
	if exists {
		return fmt.Errorf("%s: %w", ref.Name(), ginternals.ErrRefExists)
	}
	return b.writeReferenceUnsafe(ref)
}

// writeReferenceUnsafe writes the given reference on disk. If the
// reference already exists it will be overwritten.
// The data are first written in a temporary file that is then moved
// to its final location
func (b *Backend) writeReferenceUnsafe(ref *ginternals.Reference) (err error) {
	if !ginternals.IsRefNameValid(ref.Name()) {
		return fmt.Errorf("%q: %w", ref.Name(), ginternals.ErrRefNameInvalid)
	}
	data, err := ref.Content()
	if err != nil {
		return err
	}

	refPath := b.systemPath(ref.Name())
	// Since we can have `/` in the ref name, we need to create
	// the path on the FS
	dir := filepath.Dir(refPath)
	if err = b.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not persist reference to disk: %w", err)
	}

	// the temp file starts with a dot so it's never seen as a valid
	// reference
	tmp, err := afero.TempFile(b.fs, dir, "."+filepath.Base(refPath)+"-")
	if err != nil {
		return fmt.Errorf("could not create a temporary file for %s: %w", ref.Name(), err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			b.fs.Remove(tmpPath) //nolint:errcheck // it failed anyway
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck // it failed anyway
		return fmt.Errorf("could not write reference %s: %w", ref.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("could not write reference %s: %w", ref.Name(), err)
	}
	if err = b.fs.Rename(tmpPath, refPath); err != nil {
		return fmt.Errorf("could not persist reference %s: %w", ref.Name(), err)
	}
	return nil
}

// DeleteReference removes a reference from the disk. Removing
// a reference that doesn't exist is a no-op
// This method can be called concurrently
func (b *Backend) DeleteReference(name string) error {
	b.refMu.Lock()
	defer b.refMu.Unlock()

	if !ginternals.IsRefNameValid(name) {
		return fmt.Errorf("%q: %w", name, ginternals.ErrRefNameInvalid)
	}
	err := b.fs.Remove(b.systemPath(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not delete reference %s: %w", name, err)
	}
	return nil
}

// WalkReferences runs the provided method on all the references
// whose name starts with prefix.
// HEAD is visited first, followed by the content of the refs/
// directory. MERGE_HEAD is transient and never visited.
// When deref is true, the references are dereferenced before being
// passed to f. f can return WalkStop to stop the walk early
func (b *Backend) WalkReferences(prefix string, deref bool, f RefWalkFunc) error {
	names, err := b.referenceNames()
	if err != nil {
		return err
	}

	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		ref, err := b.Reference(name, deref)
		if err != nil {
			return fmt.Errorf("could not resolve reference %s: %w", name, err)
		}
		if err = f(ref); err != nil {
			if err == WalkStop { //nolint:errorlint,goerr113 // it's a fake error so no need to use Error.Is()
				return nil
			}
			return err
		}
	}
	return nil
}

// referenceNames returns the name of all the references on disk
func (b *Backend) referenceNames() (names []string, err error) {
	b.refMu.RLock()
	defer b.refMu.RUnlock()

	exists, err := afero.Exists(b.fs, b.systemPath(ginternals.Head))
	if err != nil {
		return nil, fmt.Errorf("could not check %s: %w", ginternals.Head, err)
	}
	if exists {
		names = append(names, ginternals.Head)
	}

	refsPath := ginternals.RefsPath(b.config)
	err = afero.Walk(b.fs, refsPath, func(path string, info fs.FileInfo, e error) error {
		if e != nil {
			// the refs directory may not exist if the repo has not
			// been initialized
			if path == refsPath && errors.Is(e, os.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("could not walk %s: %w", path, e)
		}
		if info.IsDir() {
			return nil
		}
		relpath, e := filepath.Rel(b.Path(), path)
		if e != nil {
			return e //nolint:wrapcheck // the error message is already pretty descriptive
		}
		// the name of the ref is its UNIX path
		name := filepath.ToSlash(relpath)
		// leftovers like temporary files are skipped
		if !ginternals.IsRefNameValid(name) {
			return nil
		}
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not browse the refs directory: %w", err)
	}
	return names, nil
}
