// Package confutil contains helpers and function to generate basic
// configuration
package confutil

import (
	"path/filepath"
	"testing"

	"github.com/Nivl/ugit/ginternals/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewCommonConfig returns a config for a repository located at
// workingTreePath, without looking at the env
func NewCommonConfig(t *testing.T, fs afero.Fs, workingTreePath string) *config.Config {
	t.Helper()

	cfg, err := config.LoadConfigSkipEnv(config.LoadConfigOptions{
		FS:           fs,
		WorkTreePath: workingTreePath,
		GitDirPath:   filepath.Join(workingTreePath, config.DefaultDotGitDirName),
	})
	require.NoError(t, err)
	return cfg
}

// NewMemConfig returns a config for a repository living in memory
func NewMemConfig(t *testing.T) (afero.Fs, *config.Config) {
	t.Helper()

	fs := afero.NewMemMapFs()
	root := filepath.Join(string(filepath.Separator), "repo")
	require.NoError(t, fs.MkdirAll(root, 0o755))
	return fs, NewCommonConfig(t, fs, root)
}
