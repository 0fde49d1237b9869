package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Nivl/ugit"
	"github.com/Nivl/ugit/env"
	"github.com/Nivl/ugit/ginternals/config"
	"github.com/Nivl/ugit/ginternals/object"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

func loadConfig(cfg *globalFlags, skipLookUp bool) (*config.Config, error) {
	return config.LoadConfig(cfg.env, config.LoadConfigOptions{
		WorkingDirectory: cfg.C.String(),
		SkipGitDirLookUp: skipLookUp,
	})
}

func loadRepository(cfg *globalFlags) (*ugit.Repository, error) {
	c, err := loadConfig(cfg, false)
	if err != nil {
		return nil, err
	}
	return ugit.OpenRepository(c)
}

// resolveCommit returns the commit targeted by name
func resolveCommit(r *ugit.Repository, name string) (*object.Commit, error) {
	oid, err := r.ResolveName(name)
	if err != nil {
		return nil, err
	}
	c, err := r.GetCommit(oid)
	if err != nil {
		return nil, fmt.Errorf("%s is not a commit: %w", name, err)
	}
	return c, nil
}

// envNoColor disables the colors when set, whatever its value.
// See https://no-color.org
const envNoColor = "NO_COLOR"

// styles contains the styles used to print things to the user.
// Nothing is styled unless the output is a terminal
type styles struct {
	commit  lipgloss.Style
	ref     lipgloss.Style
	head    lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
	header  lipgloss.Style
}

// useColors returns whether the output can be styled: it has to be a
// terminal, and $NO_COLOR must not be set
func useColors(out io.Writer, e *env.Env) bool {
	if e.Has(envNoColor) {
		return false
	}
	f, ok := out.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func newStyles(out io.Writer, e *env.Env) styles {
	s := styles{
		commit:  lipgloss.NewStyle(),
		ref:     lipgloss.NewStyle(),
		head:    lipgloss.NewStyle(),
		added:   lipgloss.NewStyle(),
		removed: lipgloss.NewStyle(),
		header:  lipgloss.NewStyle(),
	}
	if !useColors(out, e) {
		return s
	}
	s.commit = s.commit.Foreground(lipgloss.Color("3"))
	s.ref = s.ref.Foreground(lipgloss.Color("6")).Bold(true)
	s.head = s.head.Foreground(lipgloss.Color("2")).Bold(true)
	s.added = s.added.Foreground(lipgloss.Color("2"))
	s.removed = s.removed.Foreground(lipgloss.Color("1"))
	s.header = s.header.Bold(true)
	return s
}
