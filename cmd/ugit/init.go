package main

import (
	"fmt"
	"io"

	"github.com/Nivl/ugit"
	"github.com/spf13/cobra"
)

func newInitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty ugit repository",
		Args:  cobra.NoArgs,
	}

	branch := cmd.Flags().StringP("initial-branch", "b", "", "Use the specified name for the initial branch in the newly created repository.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return initCmd(cmd.OutOrStdout(), cfg, *branch)
	}

	return cmd
}

func initCmd(out io.Writer, cfg *globalFlags, branch string) error {
	c, err := loadConfig(cfg, true)
	if err != nil {
		return err
	}
	r, err := ugit.InitRepositoryWithOptions(c, ugit.InitOptions{
		InitialBranchName: branch,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Initialized empty ugit repository in %s\n", c.GitDirPath)
	return r.Close()
}
