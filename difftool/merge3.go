package difftool

import (
	"bytes"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// merge3 merges two sets of changes made against a common base
type merge3 struct {
	base      []string
	head      []string
	mergeHead []string
}

// matches returns, for each line of the base, the index of the same
// line in other, or -1 if the line has been changed
func matches(base, other []string) []int {
	out := make([]int, len(base))
	for i := range out {
		out[i] = -1
	}
	m := difflib.NewMatcherWithJunk(base, other, false, nil)
	for _, block := range m.GetMatchingBlocks() {
		for k := 0; k < block.Size; k++ {
			out[block.A+k] = block.B + k
		}
	}
	return out
}

// run writes the merged content in buf and returns whether a conflict
// has been found.
//
// The 3 versions are split into chunks. A stable chunk contains lines
// that are identical in all the versions, an unstable chunk contains
// the lines between 2 stable chunks
func (m *merge3) run(buf *bytes.Buffer) (conflicts bool) {
	inHead := matches(m.base, m.head)
	inMergeHead := matches(m.base, m.mergeHead)

	ib, ih, im := 0, 0, 0
	for {
		// stable lines are written as is
		stable := 0
		for ib+stable < len(m.base) &&
			inHead[ib+stable] == ih+stable &&
			inMergeHead[ib+stable] == im+stable {
			stable++
		}
		if stable > 0 {
			writeLines(buf, m.base[ib:ib+stable])
			ib += stable
			ih += stable
			im += stable
			continue
		}

		// we look for the next line of the base that has been kept on
		// both sides
		next := ib + 1
		for next < len(m.base) && (inHead[next] < ih || inMergeHead[next] < im) {
			next++
		}
		if next >= len(m.base) {
			if m.resolve(buf, m.base[ib:], m.head[ih:], m.mergeHead[im:]) {
				conflicts = true
			}
			return conflicts
		}
		if m.resolve(buf, m.base[ib:next], m.head[ih:inHead[next]], m.mergeHead[im:inMergeHead[next]]) {
			conflicts = true
		}
		ib, ih, im = next, inHead[next], inMergeHead[next]
	}
}

// resolve writes the result of an unstable chunk and returns whether
// it's a conflict
func (m *merge3) resolve(buf *bytes.Buffer, base, head, mergeHead []string) (conflict bool) {
	switch {
	case equalLines(head, base):
		writeLines(buf, mergeHead)
	case equalLines(mergeHead, base), equalLines(head, mergeHead):
		writeLines(buf, head)
	default:
		writeSection(buf, "<<<<<<< "+LabelHead, head)
		writeSection(buf, "||||||| "+LabelBase, base)
		writeSection(buf, "=======", mergeHead)
		buf.WriteString(">>>>>>> " + LabelMergeHead + "\n")
		return true
	}
	return false
}

func writeLines(buf *bytes.Buffer, lines []string) {
	for _, l := range lines {
		buf.WriteString(l)
	}
}

// writeSection writes a conflict marker followed by the lines. The
// last line always ends with a line break so the next marker starts on
// its own line
func writeSection(buf *bytes.Buffer, marker string, lines []string) {
	buf.WriteString(marker + "\n")
	writeLines(buf, lines)
	if n := len(lines); n > 0 && !strings.HasSuffix(lines[n-1], "\n") {
		buf.WriteByte('\n')
	}
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
