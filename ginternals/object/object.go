// Package object contains methods and objects to work with the objects
// of the odb
package object

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/internal/readutil"
	"golang.org/x/xerrors"
)

var (
	// ErrObjectUnknown represents an error thrown when encountering an
	// unknown object type
	ErrObjectUnknown = errors.New("invalid object type")

	// ErrObjectInvalid represents an error thrown when an object contains
	// unexpected data or when the wrong object is provided to a method.
	ErrObjectInvalid = errors.New("invalid object")

	// ErrTypeMismatch represents an error thrown when an object doesn't
	// have the type that was expected
	ErrTypeMismatch = errors.New("unexpected object type")

	// ErrTreeInvalid represents an error thrown when parsing an invalid
	// tree object
	ErrTreeInvalid = errors.New("invalid tree")

	// ErrCommitInvalid represents an error thrown when parsing an invalid
	// commit object
	ErrCommitInvalid = errors.New("invalid commit")
)

// Type represents the type of an object
type Type int8

// List of all the possible object types
const (
	TypeCommit Type = 1
	TypeTree   Type = 2
	TypeBlob   Type = 3
)

func (t Type) String() string {
	switch t {
	case TypeCommit:
		return "commit"
	case TypeTree:
		return "tree"
	case TypeBlob:
		return "blob"
	default:
		panic(fmt.Sprintf("unknown object type %d", t))
	}
}

// NewTypeFromString returns an Type from its string
// representation
func NewTypeFromString(t string) (Type, error) {
	switch t {
	case "commit":
		return TypeCommit, nil
	case "tree":
		return TypeTree, nil
	case "blob":
		return TypeBlob, nil
	default:
		return 0, xerrors.Errorf("%q: %w", t, ErrObjectUnknown)
	}
}

// Object represents an object of the odb. An object can be of multiple
// types but they all share the same storage system and header.
//
// Objects are stored in .ugit/objects/{id} using the following format:
// {type}\0{content}
// and the ID of an object is the SHA1 sum of this data
type Object struct {
	id      ginternals.Oid
	typ     Type
	content []byte

	idProcessing sync.Once
}

// New creates a new object of the given type
func New(typ Type, content []byte) *Object {
	return &Object{
		typ:     typ,
		content: content,
	}
}

// NewFromFrame parses the data of a stored object.
// The expected format is {type}\0{content}
func NewFromFrame(data []byte) (*Object, error) {
	typ := readutil.ReadTo(data, 0)
	if typ == nil {
		return nil, xerrors.Errorf("could not find the end of the header: %w", ErrObjectInvalid)
	}
	oType, err := NewTypeFromString(string(typ))
	if err != nil {
		return nil, xerrors.Errorf("unsupported type %q: %w", string(typ), ErrObjectInvalid)
	}
	// +1 for the \0
	return New(oType, data[len(typ)+1:]), nil
}

// ID returns the ID of the object.
func (o *Object) ID() ginternals.Oid {
	o.idProcessing.Do(func() {
		o.id = ginternals.NewOidFromContent(o.Frame())
	})
	return o.id
}

// Size returns the size of the object
func (o *Object) Size() int {
	return len(o.content)
}

// Type returns the Type for this object
func (o *Object) Type() Type {
	return o.typ
}

// Bytes returns the object's contents
func (o *Object) Bytes() []byte {
	return o.content
}

// Frame returns the data of the object the way it's stored on disk:
// {type}\0{content}
func (o *Object) Frame() []byte {
	// Quick reminder that the Write* methods on bytes.Buffer never fails,
	// the error returned is always nil
	w := new(bytes.Buffer)
	w.Grow(len(o.content) + 7)
	w.WriteString(o.Type().String())
	w.WriteByte(0)
	w.Write(o.content)
	return w.Bytes()
}

// AssertType returns ErrTypeMismatch if the object is not of the
// given type
func (o *Object) AssertType(typ Type) error {
	if o.typ != typ {
		return xerrors.Errorf("object %s is a %s, expected a %s: %w", o.ID().String(), o.typ, typ, ErrTypeMismatch)
	}
	return nil
}

// AsBlob parses the object as Blob
func (o *Object) AsBlob() (*Blob, error) {
	if err := o.AssertType(TypeBlob); err != nil {
		return nil, err
	}
	return NewBlob(o), nil
}

// AsTree parses the object as Tree
func (o *Object) AsTree() (*Tree, error) {
	return NewTreeFromObject(o)
}

// AsCommit parses the object as Commit
func (o *Object) AsCommit() (*Commit, error) {
	return NewCommitFromObject(o)
}
