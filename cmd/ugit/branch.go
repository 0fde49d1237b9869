package main

import (
	"fmt"
	"io"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/internal/errutil"
	"github.com/spf13/cobra"
)

func newBranchCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch [NAME [START_POINT]]",
		Short: "List or create branches",
		Long:  "With no arguments, list the existing branches. The current branch is marked with an asterisk. Otherwise, create a new branch starting at START_POINT, which defaults to HEAD.",
		Args:  cobra.MaximumNArgs(2),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		p := branchParams{
			startPoint: ginternals.HeadAlias,
		}
		if len(args) > 0 {
			p.name = args[0]
		}
		if len(args) > 1 {
			p.startPoint = args[1]
		}
		return branchCmd(cmd.OutOrStdout(), cfg, p)
	}

	return cmd
}

type branchParams struct {
	name       string
	startPoint string
}

func branchCmd(out io.Writer, cfg *globalFlags, p branchParams) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	if p.name == "" {
		current, err := r.BranchName()
		if err != nil {
			return err
		}
		branches, err := r.Branches()
		if err != nil {
			return err
		}
		s := newStyles(out, cfg.env)
		for _, b := range branches {
			if b == current {
				fmt.Fprintln(out, "* "+s.head.Render(b))
				continue
			}
			fmt.Fprintln(out, "  "+b)
		}
		return nil
	}

	oid, err := r.ResolveName(p.startPoint)
	if err != nil {
		return err
	}
	if err = r.CreateBranch(p.name, oid); err != nil {
		return err
	}
	fmt.Fprintf(out, "Branch %s created at %s\n", p.name, oid.Short())
	return nil
}
