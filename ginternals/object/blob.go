package object

import "github.com/Nivl/ugit/ginternals"

// Blob represents a blob object, which holds the raw content of a file
type Blob struct {
	rawObject *Object
}

// NewBlob returns a new Blob wrapping the given object
func NewBlob(o *Object) *Blob {
	return &Blob{
		rawObject: o,
	}
}

// NewBlobFromContent returns a new Blob holding the given content
func NewBlobFromContent(content []byte) *Blob {
	return NewBlob(New(TypeBlob, content))
}

// ID returns the blob's ID
func (b *Blob) ID() ginternals.Oid {
	return b.rawObject.ID()
}

// Bytes returns the blob's contents
func (b *Blob) Bytes() []byte {
	return b.rawObject.Bytes()
}

// ToObject returns the underlying Object
func (b *Blob) ToObject() *Object {
	return b.rawObject
}
