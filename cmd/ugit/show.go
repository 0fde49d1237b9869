package main

import (
	"context"
	"io"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/internal/errutil"
	"github.com/spf13/cobra"
)

func newShowCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [REF]",
		Short: "Show a commit and the changes it introduced",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		name := ginternals.HeadAlias
		if len(args) > 0 {
			name = args[0]
		}
		return showCmd(cmd.Context(), cmd.OutOrStdout(), cfg, name)
	}

	return cmd
}

func showCmd(ctx context.Context, out io.Writer, cfg *globalFlags, name string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	c, err := resolveCommit(r, name)
	if err != nil {
		return err
	}
	refs, err := r.RefsByOid()
	if err != nil {
		return err
	}
	from, err := parentFiles(r, c)
	if err != nil {
		return err
	}
	to, err := r.CommitTree(c.ID())
	if err != nil {
		return err
	}
	diff, err := r.DiffTrees(ctx, from, to)
	if err != nil {
		return err
	}

	s := newStyles(out, cfg.env)
	printCommit(out, s, c, refs[c.ID()])
	printDiff(out, s, diff)
	return nil
}
