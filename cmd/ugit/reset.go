package main

import (
	"github.com/Nivl/ugit/internal/errutil"
	"github.com/spf13/cobra"
)

func newResetCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset COMMIT",
		Short: "Move HEAD to the given commit",
		Long:  "Move HEAD, or the branch HEAD points to, to the given commit. The working tree is left untouched.",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return resetCmd(cfg, args[0])
	}

	return cmd
}

func resetCmd(cfg *globalFlags, name string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	oid, err := r.ResolveName(name)
	if err != nil {
		return err
	}
	return r.Reset(oid)
}
