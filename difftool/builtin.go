package difftool

import (
	"bytes"
	"context"
	"strings"

	"github.com/Nivl/ugit/internal/readutil"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/xerrors"
)

// contextLines is the number of unchanged lines surrounding a change
// in a diff
const contextLines = 3

// we make sure the struct implements the interface
var _ Tool = (*Builtin)(nil)

// Builtin is a Tool implemented in Go that doesn't need any external
// binaries
type Builtin struct{}

// NewBuiltin returns a new builtin Tool
func NewBuiltin() *Builtin {
	return &Builtin{}
}

// Diff returns a unified diff between from and to
func (b *Builtin) Diff(ctx context.Context, path string, from, to []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        diffLines(from),
		B:        diffLines(to),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  contextLines,
	})
	if err != nil {
		return nil, xerrors.Errorf("could not diff %s: %w", path, err)
	}
	return []byte(out), nil
}

// diffLines splits the content into lines that all end with a line
// break
func diffLines(content []byte) []string {
	lines := splitLines(content)
	if n := len(lines); n > 0 && !strings.HasSuffix(lines[n-1], "\n") {
		lines[n-1] += "\n"
	}
	return lines
}

func splitLines(content []byte) []string {
	raw := readutil.SplitLines(content)
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = string(l)
	}
	return lines
}

// Merge runs a three-way merge in the style of diff3 -m
func (b *Builtin) Merge(ctx context.Context, in MergeInput) (*MergeOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m := merge3{
		base:      splitLines(in.Base),
		head:      splitLines(in.Head),
		mergeHead: splitLines(in.MergeHead),
	}
	buf := new(bytes.Buffer)
	conflicts := m.run(buf)
	return &MergeOutput{
		Content:   buf.Bytes(),
		Conflicts: conflicts,
	}, nil
}
