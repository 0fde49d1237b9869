package main

import (
	"fmt"
	"io"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/internal/errutil"
	"github.com/spf13/cobra"
)

func newTagCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag [NAME [COMMIT]]",
		Short: "List or create tags",
		Long:  "Without arguments, list the tags. Otherwise create a tag targeting COMMIT, which defaults to HEAD.",
		Args:  cobra.MaximumNArgs(2),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return listTagsCmd(cmd.OutOrStdout(), cfg)
		}
		target := ginternals.HeadAlias
		if len(args) > 1 {
			target = args[1]
		}
		return tagCmd(cfg, args[0], target)
	}

	return cmd
}

func listTagsCmd(out io.Writer, cfg *globalFlags) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	tags, err := r.Tags()
	if err != nil {
		return err
	}
	for _, name := range tags {
		fmt.Fprintln(out, name)
	}
	return nil
}

func tagCmd(cfg *globalFlags, name, target string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	oid, err := r.ResolveName(target)
	if err != nil {
		return err
	}
	return r.CreateTag(name, oid)
}
