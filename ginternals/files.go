package ginternals

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/Nivl/ugit/ginternals/config"
)

// Refs are kept in unix format since they must be stored
// this way. The backend is in charge to convert this to the current
// system when needed
const (
	refsDirName      = "refs"
	refsTagsRelPath  = refsDirName + "/tags"
	refsHeadsRelPath = refsDirName + "/heads"
)

// LocalTagFullName returns the full name of a tag
// ex. for `my-tag` returns `refs/tags/my-tag`
func LocalTagFullName(shortName string) string {
	return path.Join(refsTagsRelPath, shortName)
}

// LocalTagShortName returns the short name of a tag
// ex. for refs/tags/my-tag returns my-tag
func LocalTagShortName(fullName string) string {
	return strings.TrimPrefix(fullName, refsTagsRelPath+"/")
}

// LocalBranchFullName returns the full name of branch
// ex. for `main` returns `refs/heads/main`
func LocalBranchFullName(shortName string) string {
	return path.Join(refsHeadsRelPath, shortName)
}

// LocalBranchShortName returns the short name of a branch
// ex. for `refs/heads/main` returns `main`
func LocalBranchShortName(fullName string) string {
	return strings.TrimPrefix(fullName, refsHeadsRelPath+"/")
}

// IsLocalBranch returns whether the full name belongs to a local branch
func IsLocalBranch(fullName string) bool {
	return strings.HasPrefix(fullName, refsHeadsRelPath+"/")
}

// RefFullName returns the UNIX path of a ref
// ex. for `heads/main` returns `refs/heads/main`
func RefFullName(shortName string) string {
	return path.Join(refsDirName, shortName)
}

// RefsPath return the path to the directory that contains all the refs
func RefsPath(cfg *config.Config) string {
	return filepath.Join(cfg.GitDirPath, refsDirName)
}

// RefPath returns the path of a reference on the current system
// ex. On windows refs/heads/main would return .ugit\refs\heads\main
func RefPath(cfg *config.Config, name string) string {
	return filepath.Join(cfg.GitDirPath, filepath.FromSlash(name))
}

// TagsPath returns the path to the directory that contains the tags
func TagsPath(cfg *config.Config) string {
	return filepath.Join(cfg.GitDirPath, filepath.FromSlash(refsTagsRelPath))
}

// LocalBranchesPath returns the path to the directory containing the
// local branches
func LocalBranchesPath(cfg *config.Config) string {
	return filepath.Join(cfg.GitDirPath, filepath.FromSlash(refsHeadsRelPath))
}

// DotGitPath returns the path to the metadata directory
func DotGitPath(cfg *config.Config) string {
	return cfg.GitDirPath
}

// ObjectsPath returns the path to the directory that contains
// the objects
func ObjectsPath(cfg *config.Config) string {
	return cfg.ObjectDirPath
}

// ObjectPath returns the path of an object.
// Objects are stored flat: .ugit/objects/{sha}
func ObjectPath(cfg *config.Config, sha string) string {
	return filepath.Join(ObjectsPath(cfg), sha)
}

// ConfigPath returns the path to the local config file
func ConfigPath(cfg *config.Config) string {
	return cfg.LocalConfig
}
