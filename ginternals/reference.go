package ginternals

import (
	"bytes"
	"errors"
	"strings"

	"golang.org/x/xerrors"
)

// Common ref names
const (
	// Head is a reference to the current branch, or to a commit if
	// we're detached
	Head = "HEAD"
	// HeadAlias is a shorter way to reference HEAD
	HeadAlias = "@"
	// MergeHead is a reference to the commit that is being merged
	// into the current branch. It only exists while a merge is waiting
	// to be committed
	MergeHead = "MERGE_HEAD"
	// Main correspond to the default branch name if none was
	// specified
	Main = "main"
)

var (
	// ErrRefNotFound is an error thrown when trying to act on a
	// reference that doesn't exists
	ErrRefNotFound = errors.New("reference not found")

	// ErrRefExists is an error thrown when trying to act on a
	// reference that should not exist, but does
	ErrRefExists = errors.New("reference already exists")

	// ErrRefNameInvalid is an error thrown when the name of a reference
	// is not valid
	ErrRefNameInvalid = errors.New("reference name is not valid")

	// ErrRefInvalid is an error thrown when a reference is not valid
	ErrRefInvalid = errors.New("reference is not valid")

	// ErrUnknownRefType is an error thrown when the type of a reference
	// is unknown
	ErrUnknownRefType = errors.New("unknown reference type")
)

// symbolicPrefix is what starts the content of a symbolic reference
const symbolicPrefix = "ref: "

// ReferenceType represents the type of a reference
type ReferenceType int8

const (
	// OidReference represents a reference that targets an Oid
	OidReference ReferenceType = 1
	// SymbolicReference represents a reference that targets another
	// reference
	SymbolicReference ReferenceType = 2
)

// Reference represents a named pointer to either an object or
// another reference.
//
// A reference that doesn't exist on disk is returned as an unborn
// OidReference: its Target() is NullOid
type Reference struct {
	name   string
	target string
	id     Oid
	typ    ReferenceType
}

// RefContent represents a method that returns the content of reference.
// ErrRefNotFound is expected when the reference doesn't exist.
// This is used so we can do the process here, without depending
// on a specific backend or having circular dependencies
type RefContent func(name string) ([]byte, error)

// ResolveReference returns the reference with the given name.
// When dereference is true, symbolic references are followed until
// a direct reference is found, and the returned reference is the last
// one of the chain.
// Circular references are reported using ErrRefInvalid
func ResolveReference(name string, finder RefContent, dereference bool) (*Reference, error) {
	return resolveRefs(name, finder, dereference, map[string]struct{}{})
}

// resolveRefs resolves references recursively
func resolveRefs(name string, finder RefContent, dereference bool, visited map[string]struct{}) (*Reference, error) {
	// we need to protect ourselves against circular references
	// Ex: refs/heads/main is a ref to refs/heads/a which is a ref to
	// refs/heads/main
	if _, ok := visited[name]; ok {
		return nil, xerrors.Errorf(`ref "%s": circular symbolic reference: %w`, name, ErrRefInvalid)
	}
	visited[name] = struct{}{}

	if !IsRefNameValid(name) {
		return nil, xerrors.Errorf(`ref "%s": %w`, name, ErrRefNameInvalid)
	}

	data, err := finder(name)
	if err != nil {
		if errors.Is(err, ErrRefNotFound) {
			return NewReference(name, NullOid), nil
		}
		return nil, err
	}

	target, isSymbolic, err := ParseReferenceContent(data)
	if err != nil {
		return nil, xerrors.Errorf(`ref "%s": %w`, name, err)
	}
	if !isSymbolic {
		id, err := NewOidFromStr(target)
		if err != nil {
			return nil, xerrors.Errorf(`ref "%s" targets %q: %w`, name, target, ErrRefInvalid)
		}
		return NewReference(name, id), nil
	}

	if !dereference {
		return NewSymbolicReference(name, target), nil
	}
	return resolveRefs(target, finder, dereference, visited)
}

// ParseReferenceContent parses the raw content of a reference file.
// The content is either an oid, or "ref: " followed by the name of
// another reference
func ParseReferenceContent(data []byte) (target string, isSymbolic bool, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", false, xerrors.Errorf("empty reference: %w", ErrRefInvalid)
	}
	if bytes.HasPrefix(data, []byte(symbolicPrefix)) {
		target = strings.TrimSpace(string(data[len(symbolicPrefix):]))
		if target == "" {
			return "", false, xerrors.Errorf("empty symbolic target: %w", ErrRefInvalid)
		}
		return target, true, nil
	}
	return string(data), false, nil
}

// Content returns the data to persist for the reference
func (ref *Reference) Content() ([]byte, error) {
	switch ref.typ {
	case SymbolicReference:
		if ref.target == "" {
			return nil, xerrors.Errorf("symbolic ref %s has no target: %w", ref.name, ErrRefInvalid)
		}
		return []byte(symbolicPrefix + ref.target + "\n"), nil
	case OidReference:
		if ref.id.IsZero() {
			return nil, xerrors.Errorf("ref %s has no target: %w", ref.name, ErrRefInvalid)
		}
		return []byte(ref.id.String() + "\n"), nil
	default:
		return nil, xerrors.Errorf("reference type %d: %w", ref.typ, ErrUnknownRefType)
	}
}

// NewReference return a new Reference object that targets
// an object
func NewReference(name string, target Oid) *Reference {
	return &Reference{
		typ:  OidReference,
		name: name,
		id:   target,
	}
}

// NewSymbolicReference return a new Reference object that targets
// another reference.
// Example HEAD targeting refs/heads/main
func NewSymbolicReference(name, target string) *Reference {
	return &Reference{
		typ:    SymbolicReference,
		name:   name,
		target: target,
	}
}

// Name returns the full name fo the reference:
// example: refs/heads/main
func (ref *Reference) Name() string {
	return ref.name
}

// Target returns the ID targeted by a reference
func (ref *Reference) Target() Oid {
	return ref.id
}

// Type returns the type of a reference
func (ref *Reference) Type() ReferenceType {
	return ref.typ
}

// SymbolicTarget returns the symbolic target of a reference
func (ref *Reference) SymbolicTarget() string {
	return ref.target
}

// IsSymbolic returns whether the reference targets another reference
func (ref *Reference) IsSymbolic() bool {
	return ref.typ == SymbolicReference
}

// IsUnborn returns whether the reference has no value
func (ref *Reference) IsUnborn() bool {
	return ref.typ == OidReference && ref.id.IsZero()
}

// IsRefNameValid returns whether the name of a reference is valid or not
// https://stackoverflow.com/a/12093994/382879
func IsRefNameValid(name string) bool {
	// the reference name cannot:
	// - be empty
	// - start by a "/"
	// - end by a "/"
	// - end by .
	if name == "" || name[0] == '/' || name[len(name)-1] == '/' || name[len(name)-1] == '.' {
		return false
	}

	// @ alone is reserved for HEAD
	if name == HeadAlias {
		return false
	}

	for i, c := range name {
		if c < 32 || c == 127 {
			return false
		}
		switch c {
		case '*', '?', '~', '^', ':', '[', '\\', ' ':
			return false
		}
		if i < len(name)-1 {
			substr := name[i : i+2]
			if substr == "@{" || substr == ".." {
				return false
			}
		}
	}

	for _, s := range strings.Split(name, "/") {
		// a segment cannot:
		// - be empty
		// - start or end by a dot
		// - end by ".lock"
		if s == "" || s[0] == '.' || s[len(s)-1] == '.' || strings.HasSuffix(s, ".lock") {
			return false
		}
	}

	return true
}
