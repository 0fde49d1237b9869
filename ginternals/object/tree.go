package object

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/internal/readutil"
	"golang.org/x/xerrors"
)

// ErrUnexpectedFilename represents an error thrown when a tree
// contains an entry that cannot be safely written on disk, like "..".
// It usually means the odb is corrupted
var ErrUnexpectedFilename = errors.New("unexpected filename")

// Tree represents a tree object, which is the listing of a directory
type Tree struct {
	rawObject *Object
	// we don't use pointers to make sure entries are immutable
	entries []TreeEntry
}

// TreeEntry represents an entry inside a tree
type TreeEntry struct {
	Name string
	ID   ginternals.Oid
	// Type is either TypeBlob for a file, or TypeTree for a
	// directory
	Type Type
}

// forbiddenNameChars contains the characters a tree entry name
// cannot contain. \n and \0 would break the encoding of the tree
//
//nolint:gochecknoglobals // Treat this as a const
var forbiddenNameChars = func() string {
	chars := "/\n\x00"
	if filepath.Separator != '/' {
		chars += string(filepath.Separator)
	}
	return chars
}()

// ValidateEntryName returns ErrUnexpectedFilename if the name cannot
// be used as the name of a tree entry
func ValidateEntryName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return xerrors.Errorf("%q: %w", name, ErrUnexpectedFilename)
	case strings.ContainsAny(name, forbiddenNameChars):
		return xerrors.Errorf("%q: %w", name, ErrUnexpectedFilename)
	}
	return nil
}

// NewTree returns a new tree with the given entries.
// The order of the entries is kept as is
func NewTree(entries []TreeEntry) (*Tree, error) {
	for i, e := range entries {
		if err := validateEntry(e); err != nil {
			return nil, xerrors.Errorf("invalid entry %d: %w", i+1, err)
		}
	}
	t := &Tree{
		entries: entries,
	}
	t.rawObject = t.ToObject()
	return t, nil
}

func validateEntry(e TreeEntry) error {
	if e.Type != TypeBlob && e.Type != TypeTree {
		return xerrors.Errorf("entry %q has type %d: %w", e.Name, e.Type, ErrTreeInvalid)
	}
	return ValidateEntryName(e.Name)
}

// NewTreeFromObject returns a new tree from an object
//
// A tree has following format:
//
// {type} {sha} {name}\n
//
// Note:
// - a Tree may have multiple entries, one per line
// - the name may contain spaces
func NewTreeFromObject(o *Object) (*Tree, error) {
	if err := o.AssertType(TypeTree); err != nil {
		return nil, err
	}

	entries := []TreeEntry{}
	objData := o.Bytes()
	offset := 0
	// the variable i is only use for error messages, not for
	// actual processing
	for i := 1; offset < len(objData); i++ {
		line := readutil.ReadTo(objData[offset:], '\n')
		if line == nil {
			return nil, xerrors.Errorf("entry %d is not terminated: %w", i, ErrTreeInvalid)
		}
		offset += len(line) + 1 // +1 for the \n

		parts := bytes.SplitN(line, []byte{' '}, 3)
		if len(parts) != 3 {
			return nil, xerrors.Errorf("entry %d has %d fields: %w", i, len(parts), ErrTreeInvalid)
		}

		typ, err := NewTypeFromString(string(parts[0]))
		if err != nil {
			return nil, xerrors.Errorf("could not parse the type of entry %d: %s: %w", i, err.Error(), ErrTreeInvalid)
		}
		id, err := ginternals.NewOidFromChars(parts[1])
		if err != nil {
			return nil, xerrors.Errorf("invalid SHA for entry %d (%s): %w", i, err.Error(), ErrTreeInvalid)
		}
		entry := TreeEntry{
			Type: typ,
			ID:   id,
			Name: string(parts[2]),
		}
		if err := validateEntry(entry); err != nil {
			return nil, xerrors.Errorf("invalid entry %d: %w", i, err)
		}
		entries = append(entries, entry)
	}

	return &Tree{
		rawObject: o,
		entries:   entries,
	}, nil
}

// Entries returns a copy of tree entries
func (t *Tree) Entries() []TreeEntry {
	out := make([]TreeEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// ID returns the object's ID
func (t *Tree) ID() ginternals.Oid {
	return t.rawObject.ID()
}

// ToObject returns an Object representing the tree
func (t *Tree) ToObject() *Object {
	if t.rawObject != nil {
		return t.rawObject
	}

	buf := new(bytes.Buffer)
	for _, e := range t.entries {
		buf.WriteString(e.Type.String())
		buf.WriteByte(' ')
		buf.WriteString(e.ID.String())
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte('\n')
	}
	return New(TypeTree, buf.Bytes())
}
