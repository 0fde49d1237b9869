package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nivl/ugit/env"
	"gopkg.in/ini.v1"
)

// Tools that can be used to diff and merge files
const (
	ToolExternal = "external"
	ToolBuiltin  = "builtin"
)

// Sections and keys of the config files
const (
	SectionCore              = "core"
	KeyCoreFormatVersion     = "repositoryformatversion"
	KeyCoreWorkTree          = "worktree"
	KeyCoreIgnore            = "ignore"
	KeyCorePrecomposeUnicode = "precomposeunicode"

	SectionInit          = "init"
	KeyInitDefaultBranch = "defaultBranch"

	SectionMerge = "merge"
	SectionDiff  = "diff"
	KeyTool      = "tool"
)

// defaultLoadOption contains the params used to load the config files
//
//nolint:gochecknoglobals // Treat this as a const
var defaultLoadOption = ini.LoadOptions{
	SkipUnrecognizableLines: true,
}

// FileAggregate represents the aggregate of all the config files
// impacting a repository
type FileAggregate struct {
	agg *ini.File
}

// RepoFormatVersion returns the version of the format of the repo
func (cfg *FileAggregate) RepoFormatVersion() (version int, ok bool) {
	v, err := cfg.agg.Section(SectionCore).Key(KeyCoreFormatVersion).Int()
	if err != nil {
		return 0, false
	}
	return v, true
}

// DefaultBranch returns the branch name to use when creating a new
// repository.
// The branch name isn't checked and may be an invalid value
func (cfg *FileAggregate) DefaultBranch() (name string, ok bool) {
	v := cfg.agg.Section(SectionInit).Key(KeyInitDefaultBranch).String()
	if v == "" {
		return "", false
	}
	return v, true
}

// WorkTree returns the path of the work-tree
func (cfg *FileAggregate) WorkTree() (workTree string, ok bool) {
	v := cfg.agg.Section(SectionCore).Key(KeyCoreWorkTree).String()
	return v, v != ""
}

// IgnoredNames returns the extra names or glob patterns that should
// be left out of the snapshots, on top of the default ones.
// The value is a comma separated list
func (cfg *FileAggregate) IgnoredNames() []string {
	out := []string{}
	for _, v := range cfg.agg.Section(SectionCore).Key(KeyCoreIgnore).Strings(",") {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// PrecomposeUnicode returns whether file names should be stored using
// the NFC form
func (cfg *FileAggregate) PrecomposeUnicode() bool {
	return cfg.agg.Section(SectionCore).Key(KeyCorePrecomposeUnicode).MustBool(false)
}

// MergeTool returns the tool to use to merge files
// Defaults to ToolExternal
func (cfg *FileAggregate) MergeTool() string {
	return toolName(cfg.agg.Section(SectionMerge).Key(KeyTool).String())
}

// DiffTool returns the tool to use to diff files
// Defaults to ToolExternal
func (cfg *FileAggregate) DiffTool() string {
	return toolName(cfg.agg.Section(SectionDiff).Key(KeyTool).String())
}

func toolName(v string) string {
	if strings.EqualFold(v, ToolBuiltin) {
		return ToolBuiltin
	}
	return ToolExternal
}

// NewFileAggregate loads all the available config files and returns an
// object with accessor
func NewFileAggregate(e *env.Env, cfg *Config) (confFile *FileAggregate, err error) {
	confFile = &FileAggregate{}
	configPaths := getPaths(e, cfg)

	// Because we want to use afero instead of the file system, we cannot
	// just provide the the file paths to ini.Load. Instead we need to open
	// all the files ourselves, provide the files to ini, and close
	// everything.
	// We use []interface{} because "ini.Load" wants a slice of interfaces
	files := make([]interface{}, 0, len(configPaths))
	for _, p := range configPaths {
		_, sErr := cfg.FS.Stat(p)
		if sErr != nil {
			// not every config files are expected to exists on disk
			// so we skip all the one that doesn't
			if errors.Is(sErr, os.ErrNotExist) {
				continue
			}
			err = fmt.Errorf("could not check file %s: %w", p, sErr)
			break
		}

		f, fErr := cfg.FS.Open(p)
		if fErr != nil {
			err = fmt.Errorf("could not open file %s: %w", p, fErr)
			break
		}
		files = append(files, f)
	}
	defer func() {
		for _, f := range files {
			//nolint:errcheck // go-ini may already have closed the file
			f.(io.ReadCloser).Close()
		}
	}()
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		confFile.agg = ini.Empty(defaultLoadOption)
		return confFile, nil
	}

	confFile.agg, err = ini.LoadSources(defaultLoadOption, files[0], files[1:]...)
	if err != nil {
		return nil, fmt.Errorf("could not load config file: %w", err)
	}
	return confFile, nil
}

// getPaths returns the config files to load, from the least specific
// to the most specific
func getPaths(e *env.Env, cfg *Config) []string {
	configPaths := []string{}
	if e != nil {
		if xdg := e.Get("XDG_CONFIG_HOME"); xdg != "" {
			configPaths = append(configPaths, filepath.Join(xdg, "ugit", "config"))
		}
		if home := e.Get("HOME"); home != "" {
			configPaths = append(configPaths, filepath.Join(home, ".ugitconfig"))
		}
	}
	return append(configPaths, cfg.LocalConfig)
}
