package main

import (
	"github.com/Nivl/ugit/ginternals/object"
	"github.com/Nivl/ugit/internal/errutil"
	"github.com/spf13/cobra"
)

func newReadTreeCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read-tree TREE",
		Short: "Replace the working tree by the content of a tree",
		Long:  "Replace the working tree by the content of a tree. Ignored files are left untouched. If a commit is provided, its tree is used.",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return readTreeCmd(cfg, args[0])
	}

	return cmd
}

func readTreeCmd(cfg *globalFlags, name string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	oid, err := r.ResolveName(name)
	if err != nil {
		return err
	}
	o, err := r.Object(oid)
	if err != nil {
		return err
	}
	if o.Type() == object.TypeCommit {
		c, err := o.AsCommit()
		if err != nil {
			return err
		}
		oid = c.TreeID()
	}
	return r.ReadTree(oid)
}
