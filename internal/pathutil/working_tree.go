// Package pathutil contains methods to find and validate paths
package pathutil

import (
	"errors"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNoRepo is an error returned when no repo are found
var ErrNoRepo = errors.New("not a ugit repository (or any of the parent directories)")

// WorkingTreeFromPath returns the absolute path to the root of a repo
// containing the provided directory.
// The root of a repo is the first directory, starting from p and
// walking up the tree, that contains a dotGitDirName directory
func WorkingTreeFromPath(fs afero.Fs, p, dotGitDirName string) (path string, err error) {
	prev := ""
	for p != prev {
		isDir, err := afero.DirExists(fs, filepath.Join(p, dotGitDirName))
		if err == nil && isDir {
			return p, nil
		}

		prev = p
		p = filepath.Dir(p)
	}
	return "", ErrNoRepo
}
