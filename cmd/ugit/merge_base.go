package main

import (
	"fmt"
	"io"

	"github.com/Nivl/ugit/internal/errutil"
	"github.com/spf13/cobra"
)

func newMergeBaseCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge-base COMMIT COMMIT",
		Short: "Find a common ancestor of two commits",
		Args:  cobra.ExactArgs(2),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return mergeBaseCmd(cmd.OutOrStdout(), cfg, args[0], args[1])
	}

	return cmd
}

func mergeBaseCmd(out io.Writer, cfg *globalFlags, a, b string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	oidA, err := r.ResolveName(a)
	if err != nil {
		return err
	}
	oidB, err := r.ResolveName(b)
	if err != nil {
		return err
	}
	base, err := r.MergeBase(oidA, oidB)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, base.String())
	return nil
}
