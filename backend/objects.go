package backend

import (
	"errors"
	"fmt"
	"os"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/ginternals/object"
	"github.com/spf13/afero"
)

// Object returns the object that has given oid.
// ginternals.ErrObjectNotFound is returned if the object doesn't exist
// This method can be called concurrently
func (b *Backend) Object(oid ginternals.Oid) (*object.Object, error) {
	key := oid.Bytes()
	b.objectMu.RLock(key)
	defer b.objectMu.RUnlock(key)

	return b.objectUnsafe(oid)
}

// ObjectOfType returns the object that has given oid, making sure it
// has the expected type.
// object.ErrTypeMismatch is returned if the types are different
// This method can be called concurrently
func (b *Backend) ObjectOfType(oid ginternals.Oid, typ object.Type) (*object.Object, error) {
	o, err := b.Object(oid)
	if err != nil {
		return nil, err
	}
	if err = o.AssertType(typ); err != nil {
		return nil, err
	}
	return o, nil
}

func (b *Backend) objectUnsafe(oid ginternals.Oid) (*object.Object, error) {
	if o, found := b.cache.Get(oid); found {
		return o, nil
	}

	strOid := oid.String()
	p := ginternals.ObjectPath(b.config, strOid)
	data, err := afero.ReadFile(b.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("object %s: %w", strOid, ginternals.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("could not read object %s at path %s: %w", strOid, p, err)
	}

	o, err := object.NewFromFrame(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse object %s at path %s: %w", strOid, p, err)
	}
	if o.ID() != oid {
		return nil, fmt.Errorf("object at path %s has id %s: %w", p, o.ID().String(), object.ErrObjectInvalid)
	}

	b.cache.Add(oid, o)
	return o, nil
}

// HasObject returns whether an object exists in the odb
// This method can be called concurrently
func (b *Backend) HasObject(oid ginternals.Oid) (bool, error) {
	key := oid.Bytes()
	b.objectMu.RLock(key)
	defer b.objectMu.RUnlock(key)

	return b.hasObjectUnsafe(oid)
}

func (b *Backend) hasObjectUnsafe(oid ginternals.Oid) (bool, error) {
	if _, found := b.cache.Get(oid); found {
		return true, nil
	}
	exists, err := afero.Exists(b.fs, ginternals.ObjectPath(b.config, oid.String()))
	if err != nil {
		return false, fmt.Errorf("could not check object %s: %w", oid.String(), err)
	}
	return exists, nil
}

// WriteObject adds an object to the odb. Writing an object that
// already exists is a no-op.
// This method can be called concurrently
func (b *Backend) WriteObject(o *object.Object) (ginternals.Oid, error) {
	oid := o.ID()
	key := oid.Bytes()
	b.objectMu.Lock(key)
	defer b.objectMu.Unlock(key)

	// Make sure the object doesn't already exist
	found, err := b.hasObjectUnsafe(oid)
	if err != nil {
		return ginternals.NullOid, fmt.Errorf("could not check if object (%s) already exists: %w", oid.String(), err)
	}
	if found {
		return oid, nil
	}

	// Persist the data on disk
	sha := oid.String()
	p := ginternals.ObjectPath(b.config, sha)

	// We need to make sure the dest dir exists
	dest := ginternals.ObjectsPath(b.config)
	if err = b.fs.MkdirAll(dest, 0o755); err != nil {
		return ginternals.NullOid, fmt.Errorf("could not create the destination directory %s: %w", dest, err)
	}

	// We use 444 because objects are read-only
	if err = afero.WriteFile(b.fs, p, o.Frame(), 0o444); err != nil {
		return ginternals.NullOid, fmt.Errorf("could not persist object %s at path %s: %w", sha, p, err)
	}

	b.cache.Add(oid, o)
	return oid, nil
}
