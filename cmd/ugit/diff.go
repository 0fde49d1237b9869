package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Nivl/ugit"
	"github.com/Nivl/ugit/internal/errutil"
	"github.com/spf13/cobra"
)

func newDiffCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [REF]",
		Short: "Show the changes between a commit and the working tree",
		Long:  "Show the changes between a commit and the working tree. Defaults to HEAD.",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return diffCmd(cmd.Context(), cmd.OutOrStdout(), cfg, name)
	}

	return cmd
}

func diffCmd(ctx context.Context, out io.Writer, cfg *globalFlags, name string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	from := ugit.TreeMap{}
	switch name {
	case "":
		// HEAD may not have any commits yet
		head, err := r.Head()
		if err != nil {
			return err
		}
		if !head.IsUnborn() {
			if from, err = r.CommitTree(head.Target()); err != nil {
				return err
			}
		}
	default:
		c, err := resolveCommit(r, name)
		if err != nil {
			return err
		}
		if from, err = r.CommitTree(c.ID()); err != nil {
			return err
		}
	}

	to, err := r.WorkingTree()
	if err != nil {
		return err
	}
	diff, err := r.DiffTrees(ctx, from, to)
	if err != nil {
		return err
	}
	printDiff(out, newStyles(out, cfg.env), diff)
	return nil
}

// printDiff prints a unified diff, coloring the added and removed
// lines
func printDiff(out io.Writer, s styles, diff []byte) {
	for _, line := range bytes.SplitAfter(diff, []byte{'\n'}) {
		if len(line) == 0 {
			continue
		}
		text := string(bytes.TrimSuffix(line, []byte{'\n'}))
		switch {
		case bytes.HasPrefix(line, []byte("+++")), bytes.HasPrefix(line, []byte("---")):
			text = s.header.Render(text)
		case line[0] == '+':
			text = s.added.Render(text)
		case line[0] == '-':
			text = s.removed.Render(text)
		}
		fmt.Fprintln(out, text)
	}
}
