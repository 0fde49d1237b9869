package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Nivl/ugit/internal/errutil"
	"github.com/spf13/cobra"
)

func newMergeCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge COMMIT",
		Short: "Merge a commit into HEAD",
		Long:  "Merge a commit into HEAD. When possible HEAD is fast-forwarded, otherwise the result of the merge is written in the working tree and will be recorded by the next commit.",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return mergeCmd(cmd.Context(), cmd.OutOrStdout(), cfg, args[0])
	}

	return cmd
}

func mergeCmd(ctx context.Context, out io.Writer, cfg *globalFlags, name string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	c, err := resolveCommit(r, name)
	if err != nil {
		return err
	}
	res, err := r.Merge(ctx, c.ID())
	if err != nil {
		return err
	}

	switch {
	case res.UpToDate:
		fmt.Fprintln(out, "Already up to date.")
	case res.FastForward:
		fmt.Fprintln(out, "Fast-forward merge, no need to commit")
	default:
		for _, p := range res.Conflicts {
			fmt.Fprintf(out, "CONFLICT (content): Merge conflict in %s\n", p)
		}
		fmt.Fprintln(out, "Merged in working tree")
		fmt.Fprintln(out, "Please commit")
	}
	return nil
}
