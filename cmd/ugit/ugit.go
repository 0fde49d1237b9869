package main

import (
	"github.com/Nivl/ugit/env"
	"github.com/Nivl/ugit/internal/pathutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type globalFlags struct {
	env *env.Env
	C   pflag.Value // simpler version of git's -C: https://git-scm.com/docs/git#Documentation/git.txt--Cltpathgt
}

func newRootCmd(cwd string, e *env.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ugit",
		Short:         "a tiny version control system",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cfg := &globalFlags{
		env: e,
		C:   pathutil.NewDirPathFlagWithDefault(cwd),
	}
	cmd.PersistentFlags().VarP(cfg.C, "C", "C", "Run as if ugit was started in the provided path instead of the current working directory.")

	// porcelain
	cmd.AddCommand(newInitCmd(cfg))
	cmd.AddCommand(newCommitCmd(cfg))
	cmd.AddCommand(newLogCmd(cfg))
	cmd.AddCommand(newShowCmd(cfg))
	cmd.AddCommand(newCheckoutCmd(cfg))
	cmd.AddCommand(newBranchCmd(cfg))
	cmd.AddCommand(newTagCmd(cfg))
	cmd.AddCommand(newStatusCmd(cfg))
	cmd.AddCommand(newResetCmd(cfg))
	cmd.AddCommand(newDiffCmd(cfg))
	cmd.AddCommand(newMergeCmd(cfg))

	// plumbing
	cmd.AddCommand(newWriteTreeCmd(cfg))
	cmd.AddCommand(newReadTreeCmd(cfg))
	cmd.AddCommand(newMergeBaseCmd(cfg))
	cmd.AddCommand(newCatFileCmd(cfg))
	cmd.AddCommand(newHashObjectCmd(cfg))

	return cmd
}
