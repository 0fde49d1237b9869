package main

import (
	"github.com/Nivl/ugit/internal/errutil"
	"github.com/spf13/cobra"
)

func newCheckoutCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout REF",
		Short: "Switch branches or restore a commit",
		Long:  "Replace the working tree by the content of a commit. If REF is a branch, HEAD is attached to it, otherwise HEAD is detached.",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return checkoutCmd(cfg, args[0])
	}

	return cmd
}

func checkoutCmd(cfg *globalFlags, name string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	return r.Checkout(name)
}
