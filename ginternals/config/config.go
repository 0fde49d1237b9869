// Package config contains structs to interact with the repository
// configuration as well as to configure the library
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Nivl/ugit/env"
	"github.com/Nivl/ugit/internal/pathutil"
	"github.com/spf13/afero"
)

// Default names of the files and directories of a repository
const (
	// DefaultDotGitDirName is the name of the directory holding the
	// repository's data
	DefaultDotGitDirName = ".ugit"
	// DefaultObjectsDirName is the name of the directory holding the
	// objects, inside DefaultDotGitDirName
	DefaultObjectsDirName = "objects"
	// DefaultConfigFileName is the name of the local config file,
	// inside DefaultDotGitDirName
	DefaultConfigFileName = "config"
)

// ErrNoWorkTreeAlone is thrown when a work tree path is given without
// a ugit dir path
var ErrNoWorkTreeAlone = errors.New("cannot specify a work tree without also specifying a ugit dir")

// Config represents the config of a repository, whether it's from
// the config files or from the options that can be set using
// the env.
//
// If you decide to create a Config by yourself, make sure to set correct
// values everywhere
type Config struct {
	// FS represents the file system implementation to use to look for
	// files and directories.
	// Defaults to the regular filesystem.
	FS afero.Fs

	// fromFiles contains a reference to the config values held in
	// files
	fromFiles *FileAggregate
	env       *env.Env

	// GitDirPath represents the path to the .ugit directory
	// Maps to $UGIT_DIR if set
	// Defaults to finding a ".ugit" folder in the current directory,
	// going up in the tree until reaching /
	GitDirPath string
	// WorkTreePath represents the path to the working tree
	// Maps to $UGIT_WORK_TREE
	// Defaults to the directory containing GitDirPath
	WorkTreePath string
	// ObjectDirPath represents the path to the .ugit/objects directory
	// Maps to $UGIT_OBJECT_DIRECTORY
	// Defaults to $(GitDirPath)/objects
	ObjectDirPath string
	// LocalConfig represents the config file to load
	// Maps to $UGIT_CONFIG
	// Defaults to $(GitDirPath)/config if not sets
	LocalConfig string
}

// LoadConfigOptions represents all the params used to set the default
// values of a Config object
type LoadConfigOptions struct {
	// FS represents the file system implementation to use to look for
	// files and directories.
	// Defaults to the regular filesystem.
	FS afero.Fs
	// WorkingDirectory represents the current working directory
	// Defaults to the current working directory
	WorkingDirectory string
	// WorkTreePath corresponds to the directory that should contain
	// the .ugit.
	// Set this value to change the default behavior and overwrite
	// $UGIT_WORK_TREE.
	WorkTreePath string
	// GitDirPath corresponds to the .ugit directory
	// Set this value to change the default behavior and overwrite
	// $UGIT_DIR.
	GitDirPath string
	// SkipGitDirLookUp will disable automatic lookup of the .ugit
	// directory.
	// Defaults to false which means that if no path is provided
	// to $GitDirPath or $UGIT_DIR, the method will look for a .ugit dir
	// in $WorkingDirectory and will go up the tree until it finds one.
	//
	// You should only set this value to true if you want to initialize a
	// new repository.
	SkipGitDirLookUp bool
}

// LoadConfig returns a new Config that fetches the data from the
// env
func LoadConfig(e *env.Env, p LoadConfigOptions) (*Config, error) {
	cfg := &Config{
		env:           e,
		GitDirPath:    e.Get("UGIT_DIR"),
		WorkTreePath:  e.Get("UGIT_WORK_TREE"),
		ObjectDirPath: e.Get("UGIT_OBJECT_DIRECTORY"),
		LocalConfig:   e.Get("UGIT_CONFIG"),
	}

	if err := setConfig(cfg, p); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigSkipEnv returns a new Config that skips the env
// and uses the default values
func LoadConfigSkipEnv(opts LoadConfigOptions) (*Config, error) {
	return LoadConfig(env.NewFromKVList([]string{}), opts)
}

// FromFiles returns the values set in the config files
func (cfg *Config) FromFiles() *FileAggregate {
	return cfg.fromFiles
}

// ReloadFiles reloads the config files. This is useful after a
// repository has been initialized, since its config file didn't exist
// yet when the Config was created
func (cfg *Config) ReloadFiles() (err error) {
	cfg.fromFiles, err = NewFileAggregate(cfg.env, cfg)
	if err != nil {
		return fmt.Errorf("could not load config files: %w", err)
	}
	return nil
}

func setConfig(p *Config, opts LoadConfigOptions) (err error) {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	p.FS = opts.FS

	if opts.WorkingDirectory == "" || !filepath.IsAbs(opts.WorkingDirectory) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("could not get the current directory: %w", err)
		}
		opts.WorkingDirectory = filepath.Join(wd, opts.WorkingDirectory)
	}

	// $UGIT_WORK_TREE cannot be set if $UGIT_DIR isn't set
	if opts.GitDirPath == "" && p.GitDirPath == "" && (opts.WorkTreePath != "" || p.WorkTreePath != "") {
		return ErrNoWorkTreeAlone
	}

	// GitDir rules:
	// - opts.GitDirPath overrides $UGIT_DIR
	// - If nothing set, a .ugit directory will looked for by walking up
	//   the current directory.
	// - If relative, the path will be appended to the current working
	//   directory.
	if opts.GitDirPath != "" {
		p.GitDirPath = opts.GitDirPath
	}
	guessedWorkingTree := opts.WorkingDirectory
	switch p.GitDirPath {
	default:
		if !filepath.IsAbs(p.GitDirPath) {
			p.GitDirPath = filepath.Join(opts.WorkingDirectory, p.GitDirPath)
		}
		guessedWorkingTree = filepath.Dir(p.GitDirPath)
	case "":
		if !opts.SkipGitDirLookUp {
			guessedWorkingTree, err = pathutil.WorkingTreeFromPath(p.FS, opts.WorkingDirectory, DefaultDotGitDirName)
			if err != nil {
				return fmt.Errorf("could not find working tree: %w", err)
			}
		}
		p.GitDirPath = filepath.Join(guessedWorkingTree, DefaultDotGitDirName)
	}

	if p.LocalConfig == "" {
		p.LocalConfig = filepath.Join(p.GitDirPath, DefaultConfigFileName)
	}
	if !filepath.IsAbs(p.LocalConfig) {
		p.LocalConfig = filepath.Join(opts.WorkingDirectory, p.LocalConfig)
	}

	if p.ObjectDirPath == "" {
		p.ObjectDirPath = filepath.Join(p.GitDirPath, DefaultObjectsDirName)
	}
	if !filepath.IsAbs(p.ObjectDirPath) {
		p.ObjectDirPath = filepath.Join(opts.WorkingDirectory, p.ObjectDirPath)
	}

	if err = p.ReloadFiles(); err != nil {
		return err
	}

	// Worktree rules, by order of priority:
	// - opts.WorkTreePath
	// - $UGIT_WORK_TREE
	// - core.worktree
	// - the directory containing the .ugit directory
	if p.WorkTreePath == "" {
		if path, ok := p.fromFiles.WorkTree(); ok {
			p.WorkTreePath = path
		}
	}
	if opts.WorkTreePath != "" {
		p.WorkTreePath = opts.WorkTreePath
	}
	if p.WorkTreePath == "" {
		p.WorkTreePath = guessedWorkingTree
	}
	if !filepath.IsAbs(p.WorkTreePath) {
		p.WorkTreePath = filepath.Join(opts.WorkingDirectory, p.WorkTreePath)
	}

	return nil
}
