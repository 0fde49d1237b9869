package object

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/internal/readutil"
	"golang.org/x/xerrors"
)

// Fields of a commit
const (
	commitFieldTree   = "tree"
	commitFieldParent = "parent"
)

// Commit represents a commit object
type Commit struct {
	rawObject *Object

	message   string
	parentIDs []ginternals.Oid
	treeID    ginternals.Oid
}

// NewCommit creates a new Commit object
// Any provided Oids won't be check
func NewCommit(treeID ginternals.Oid, parentIDs []ginternals.Oid, message string) *Commit {
	c := &Commit{
		treeID:    treeID,
		message:   message,
		parentIDs: append([]ginternals.Oid{}, parentIDs...),
	}
	c.rawObject = c.ToObject()
	return c
}

// NewCommitFromObject creates a commit from a raw object
//
// A commit has following format:
//
// tree {sha}
// parent {sha}
// {a blank line}
// {commit message}
//
// Note:
//   - A commit can have 0, 1, or many parents lines
//     The very first commit of a repo has no parents
//     A regular commit as 1 parent
//     A merge commit has 2 or more parents
//   - Unknown fields are skipped
func NewCommitFromObject(o *Object) (*Commit, error) {
	if err := o.AssertType(TypeCommit); err != nil {
		return nil, err
	}
	ci := &Commit{
		rawObject: o,
	}
	offset := 0
	objData := o.Bytes()
	for {
		line := readutil.ReadTo(objData[offset:], '\n')
		if line == nil {
			return nil, xerrors.Errorf("could not find the end of the header: %w", ErrCommitInvalid)
		}
		offset += len(line) + 1 // +1 to count the \n

		// if we got an empty line, it means everything from now to the end
		// will be the commit message
		if len(line) == 0 {
			ci.message = strings.TrimSuffix(string(objData[offset:]), "\n")
			break
		}

		// Otherwise we're getting a key/value pair, separated by a space
		kv := bytes.SplitN(line, []byte{' '}, 2)
		if len(kv) != 2 {
			return nil, xerrors.Errorf("malformed field %q: %w", line, ErrCommitInvalid)
		}
		switch string(kv[0]) {
		case commitFieldTree:
			oid, err := ginternals.NewOidFromChars(kv[1])
			if err != nil {
				return nil, xerrors.Errorf("could not parse tree id %q: %w", kv[1], ErrCommitInvalid)
			}
			ci.treeID = oid
		case commitFieldParent:
			oid, err := ginternals.NewOidFromChars(kv[1])
			if err != nil {
				return nil, xerrors.Errorf("could not parse parent id %q: %w", kv[1], ErrCommitInvalid)
			}
			ci.parentIDs = append(ci.parentIDs, oid)
		default:
			slog.Warn("skipping unknown commit field",
				"commit", o.ID().String(),
				"field", string(kv[0]))
		}
	}

	if ci.treeID.IsZero() {
		return nil, xerrors.Errorf("commit has no tree: %w", ErrCommitInvalid)
	}
	return ci, nil
}

// ID returns the SHA of the commit object
func (c *Commit) ID() ginternals.Oid {
	return c.rawObject.ID()
}

// TreeID returns the SHA of the commit's tree
func (c *Commit) TreeID() ginternals.Oid {
	return c.treeID
}

// ParentIDs returns a copy of the list of the commit's parents
func (c *Commit) ParentIDs() []ginternals.Oid {
	out := make([]ginternals.Oid, len(c.parentIDs))
	copy(out, c.parentIDs)
	return out
}

// Message returns the commit's message
func (c *Commit) Message() string {
	return c.message
}

// ToObject returns the underlying Object
func (c *Commit) ToObject() *Object {
	if c.rawObject != nil {
		return c.rawObject
	}

	// Quick reminder that the Write* methods on bytes.Buffer never fails,
	// the error returned is always nil
	buf := new(bytes.Buffer)

	buf.WriteString(commitFieldTree + " ")
	buf.WriteString(c.treeID.String())
	buf.WriteByte('\n')

	for _, p := range c.parentIDs {
		buf.WriteString(commitFieldParent + " ")
		buf.WriteString(p.String())
		buf.WriteByte('\n')
	}

	buf.WriteByte('\n')
	buf.WriteString(c.message)
	buf.WriteByte('\n')

	return New(TypeCommit, buf.Bytes())
}
