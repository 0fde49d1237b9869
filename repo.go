// Package ugit contains methods to create and interact with a ugit
// repository: snapshots of a directory, history, branches, tags, and
// merges
package ugit

import (
	"errors"
	"fmt"

	"github.com/Nivl/ugit/backend"
	"github.com/Nivl/ugit/difftool"
	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/ginternals/config"
	"github.com/Nivl/ugit/worktree"
	"github.com/spf13/afero"
)

// List of errors returned by the Repository struct
var (
	ErrRepositoryNotExist           = errors.New("repository does not exist")
	ErrRepositoryUnsupportedVersion = errors.New("repository not supported")
	ErrRepositoryExists             = errors.New("repository already exists")
	ErrUnknownName                  = errors.New("unknown name")
	ErrNoCommonAncestor             = errors.New("no common ancestor")
	ErrUnbornHead                   = errors.New("HEAD does not point to a commit")
)

// Repository represent a ugit repository: the .ugit/ folder inside a
// project and the working tree that comes with it
type Repository struct {
	Config *config.Config

	dotGit    *backend.Backend
	wt        *worktree.Worktree
	diffTool  difftool.Tool
	mergeTool difftool.Tool
}

// InitOptions contains all the optional data used to initialized a
// repository
type InitOptions struct {
	// InitialBranchName is the name of the branch HEAD points to.
	// Defaults to init.defaultBranch, or "main"
	InitialBranchName string
	// Tool replaces the diff and merge tools set in the config
	Tool difftool.Tool
}

// InitRepository initialize a new repository by creating the .ugit
// directory described by the config
func InitRepository(cfg *config.Config) (*Repository, error) {
	return InitRepositoryWithOptions(cfg, InitOptions{})
}

// InitRepositoryWithOptions initialize a new repository by creating
// the .ugit directory described by the config
func InitRepositoryWithOptions(cfg *config.Config, opts InitOptions) (r *Repository, err error) {
	r, err = newRepository(cfg, opts.Tool)
	if err != nil {
		return nil, err
	}

	branch := opts.InitialBranchName
	if branch == "" {
		branch = ginternals.Main
		if name, ok := cfg.FromFiles().DefaultBranch(); ok {
			branch = name
		}
	}

	if err = r.dotGit.Init(branch); err != nil {
		r.Close() //nolint:errcheck // it already failed
		if errors.Is(err, ginternals.ErrRefExists) {
			return nil, ErrRepositoryExists
		}
		return nil, fmt.Errorf("could not initialize the repository: %w", err)
	}

	// The config file has been created, so we need to reload it
	if err = cfg.ReloadFiles(); err != nil {
		r.Close() //nolint:errcheck // it already failed
		return nil, err
	}
	r.setTools(opts.Tool)
	r.wt = worktree.New(cfg)
	return r, nil
}

// OpenOptions contains all the optional data used to open a
// repository
type OpenOptions struct {
	// Tool replaces the diff and merge tools set in the config
	Tool difftool.Tool
}

// OpenRepository loads an existing repository
func OpenRepository(cfg *config.Config) (*Repository, error) {
	return OpenRepositoryWithOptions(cfg, OpenOptions{})
}

// OpenRepositoryWithOptions loads an existing repository
func OpenRepositoryWithOptions(cfg *config.Config, opts OpenOptions) (*Repository, error) {
	// HEAD should always be there
	exists, err := afero.Exists(cfg.FS, ginternals.RefPath(cfg, ginternals.Head))
	if err != nil {
		return nil, fmt.Errorf("could not check the repository: %w", err)
	}
	if !exists {
		return nil, ErrRepositoryNotExist
	}
	if v, ok := cfg.FromFiles().RepoFormatVersion(); ok && v != 0 {
		return nil, fmt.Errorf("version %d: %w", v, ErrRepositoryUnsupportedVersion)
	}

	return newRepository(cfg, opts.Tool)
}

func newRepository(cfg *config.Config, tool difftool.Tool) (*Repository, error) {
	b, err := backend.NewFS(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create the backend: %w", err)
	}
	r := &Repository{
		Config: cfg,
		dotGit: b,
		wt:     worktree.New(cfg),
	}
	r.setTools(tool)
	return r, nil
}

// setTools sets the diff and merge tools using the config, unless
// a tool is provided
func (r *Repository) setTools(tool difftool.Tool) {
	if tool != nil {
		r.diffTool = tool
		r.mergeTool = tool
		return
	}
	r.diffTool = difftool.New(r.Config.FromFiles().DiffTool())
	r.mergeTool = difftool.New(r.Config.FromFiles().MergeTool())
}

// Close frees the resources used by the repository
func (r *Repository) Close() error {
	return r.dotGit.Close()
}

// Reference returns the reference with the given name. A reference
// that doesn't exist is returned unborn.
// When deref is true, symbolic references are followed
func (r *Repository) Reference(name string, deref bool) (*ginternals.Reference, error) {
	return r.dotGit.Reference(name, deref)
}

// Head returns the reference targeted by HEAD, dereferenced
func (r *Repository) Head() (*ginternals.Reference, error) {
	return r.dotGit.Reference(ginternals.Head, true)
}
