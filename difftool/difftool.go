// Package difftool contains the tools used to diff and merge the
// content of files
package difftool

import (
	"context"
	"errors"

	"github.com/Nivl/ugit/ginternals/config"
)

// ErrToolInvocation is returned when a tool could not be run, or
// reported a failure
var ErrToolInvocation = errors.New("tool invocation failed")

// Labels used in the conflict markers
const (
	LabelHead      = "HEAD"
	LabelBase      = "BASE"
	LabelMergeHead = "MERGE_HEAD"
)

// MergeInput contains the 3 versions of a file to merge.
// A version that doesn't exist is empty
type MergeInput struct {
	Path string
	// Base is the version of the common ancestor
	Base []byte
	// Head is the version of the current branch
	Head []byte
	// MergeHead is the version of the branch being merged
	MergeHead []byte
}

// MergeOutput contains the result of a merge
type MergeOutput struct {
	Content []byte
	// Conflicts is true when Content contains conflict markers
	Conflicts bool
}

// Tool represents a tool that can diff and merge files
type Tool interface {
	// Diff returns a unified diff between from and to. An empty
	// diff is returned when the contents are identical
	Diff(ctx context.Context, path string, from, to []byte) ([]byte, error)
	// Merge runs a three-way merge
	Merge(ctx context.Context, in MergeInput) (*MergeOutput, error)
}

// New returns the tool matching the given name.
// Unknown names fallback to the external tool
func New(name string) Tool {
	if name == config.ToolBuiltin {
		return NewBuiltin()
	}
	return NewExternal()
}
