package backend

import (
	"errors"
	"fmt"
	"os"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/ginternals/config"
	"github.com/Nivl/ugit/internal/errutil"
	"gopkg.in/ini.v1"
)

// Init initializes a repository.
// ginternals.ErrRefExists is returned if the repository already
// has a HEAD.
// This method cannot be called concurrently with other methods
func (b *Backend) Init(branchName string) error {
	if !ginternals.IsRefNameValid(ginternals.LocalBranchFullName(branchName)) {
		return fmt.Errorf("invalid branch name %q: %w", branchName, ginternals.ErrRefNameInvalid)
	}

	_, err := b.fs.Stat(b.systemPath(ginternals.Head))
	if err == nil {
		return fmt.Errorf("%s already exists: %w", ginternals.Head, ginternals.ErrRefExists)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not check if the repository exists: %w", err)
	}

	// Create the directories
	dirs := []string{
		b.Path(),
		ginternals.ObjectsPath(b.config),
		ginternals.TagsPath(b.config),
		ginternals.LocalBranchesPath(b.config),
	}
	for _, d := range dirs {
		if err := b.fs.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("could not create directory %s: %w", d, err)
		}
	}

	if err := b.setDefaultCfg(branchName); err != nil {
		return fmt.Errorf("could not set the default config: %w", err)
	}

	ref := ginternals.NewSymbolicReference(ginternals.Head, ginternals.LocalBranchFullName(branchName))
	if err := b.WriteReferenceSafe(ref); err != nil {
		return fmt.Errorf("could not write HEAD: %w", err)
	}
	return nil
}

// setDefaultCfg set and persists the default configuration for
// the repository, unless a config file already exists
func (b *Backend) setDefaultCfg(branchName string) (err error) {
	p := ginternals.ConfigPath(b.config)
	if _, err = b.fs.Stat(p); err == nil {
		return nil
	}

	cfg := ini.Empty()
	sections := map[string]map[string]string{
		config.SectionCore: {
			config.KeyCoreFormatVersion: formatVersion,
		},
		config.SectionInit: {
			config.KeyInitDefaultBranch: branchName,
		},
	}
	for name, keys := range sections {
		section, err := cfg.NewSection(name)
		if err != nil {
			return fmt.Errorf("could not create %s section: %w", name, err)
		}
		for k, v := range keys {
			if _, err := section.NewKey(k, v); err != nil {
				return fmt.Errorf("could not set %s.%s: %w", name, k, err)
			}
		}
	}

	f, err := b.fs.Create(p)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", p, err)
	}
	defer errutil.Close(f, &err)

	if _, err = cfg.WriteTo(f); err != nil {
		return fmt.Errorf("could not write %s: %w", p, err)
	}
	return nil
}
