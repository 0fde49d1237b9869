package main

import (
	"fmt"
	"io"

	"github.com/Nivl/ugit/internal/errutil"
	"github.com/spf13/cobra"
)

func newCommitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record a snapshot of the working tree",
		Args:  cobra.NoArgs,
	}

	message := cmd.Flags().StringP("message", "m", "", "Use the given message as the commit message.")
	cmd.MarkFlagRequired("message") //nolint:errcheck // the flag exists

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return commitCmd(cmd.OutOrStdout(), cfg, *message)
	}

	return cmd
}

func commitCmd(out io.Writer, cfg *globalFlags, message string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	c, err := r.Commit(message)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, c.ID().String())
	return nil
}
