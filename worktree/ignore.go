package worktree

import (
	"path"
	"strings"
)

// defaultIgnoredNames contains the names that are never part of a
// snapshot
//
//nolint:gochecknoglobals // Treat this as a const
var defaultIgnoredNames = []string{".ugit", ".git", "node_modules", "dist"}

// Ignorer decides which paths of the working tree are left out of
// the snapshots
type Ignorer struct {
	patterns []string
}

// NewIgnorer returns an Ignorer that ignores the default names as well
// as the given extra names or glob patterns
func NewIgnorer(extra ...string) *Ignorer {
	patterns := make([]string, 0, len(defaultIgnoredNames)+len(extra))
	patterns = append(patterns, defaultIgnoredNames...)
	for _, p := range extra {
		p = strings.TrimSpace(p)
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return &Ignorer{
		patterns: patterns,
	}
}

// IsIgnored returns whether the given slash separated path, relative
// to the root of the working tree, should be ignored.
// A path is ignored if any of its components matches a pattern
func (i *Ignorer) IsIgnored(relPath string) bool {
	for _, part := range strings.Split(relPath, "/") {
		if part == "" {
			continue
		}
		for _, p := range i.patterns {
			// ErrBadPattern means the pattern can only match itself
			if ok, err := path.Match(p, part); (err == nil && ok) || p == part {
				return true
			}
		}
	}
	return false
}
