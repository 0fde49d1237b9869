package ugit

import (
	"fmt"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/ginternals/object"
)

// Object returns the object matching the given ID
func (r *Repository) Object(oid ginternals.Oid) (*object.Object, error) {
	return r.dotGit.Object(oid)
}

// ObjectOfType returns the object matching the given ID, making sure
// it has the expected type
func (r *Repository) ObjectOfType(oid ginternals.Oid, typ object.Type) (*object.Object, error) {
	return r.dotGit.ObjectOfType(oid, typ)
}

// HasObject returns whether an object exists in the odb
func (r *Repository) HasObject(oid ginternals.Oid) (bool, error) {
	return r.dotGit.HasObject(oid)
}

// WriteObject stores the given object and returns its ID
func (r *Repository) WriteObject(o *object.Object) (ginternals.Oid, error) {
	return r.dotGit.WriteObject(o)
}

// NewBlob creates, stores, and returns a new Blob object
func (r *Repository) NewBlob(data []byte) (*object.Blob, error) {
	blob := object.NewBlobFromContent(data)
	if _, err := r.dotGit.WriteObject(blob.ToObject()); err != nil {
		return nil, fmt.Errorf("could not write the blob: %w", err)
	}
	return blob, nil
}

// blobContent returns the content of a blob. A null ID returns no
// content
func (r *Repository) blobContent(oid ginternals.Oid) ([]byte, error) {
	if oid.IsZero() {
		return []byte{}, nil
	}
	o, err := r.dotGit.ObjectOfType(oid, object.TypeBlob)
	if err != nil {
		return nil, fmt.Errorf("could not get blob %s: %w", oid.String(), err)
	}
	return o.Bytes(), nil
}
