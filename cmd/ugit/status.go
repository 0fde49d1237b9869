package main

import (
	"fmt"
	"io"

	"github.com/Nivl/ugit"
	"github.com/Nivl/ugit/internal/errutil"
	"github.com/spf13/cobra"
)

func newStatusCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the working tree status",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return statusCmd(cmd.OutOrStdout(), cfg)
	}

	return cmd
}

func statusCmd(out io.Writer, cfg *globalFlags) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	st, err := r.Status()
	if err != nil {
		return err
	}

	s := newStyles(out, cfg.env)
	switch {
	case st.Branch != "":
		fmt.Fprintf(out, "On branch %s\n", s.head.Render(st.Branch))
	default:
		fmt.Fprintf(out, "HEAD detached at %s\n", s.commit.Render(st.Head.Short()))
	}
	if !st.MergeHead.IsZero() {
		fmt.Fprintf(out, "Merging with %s\n", s.commit.Render(st.MergeHead.Short()))
	}
	if len(st.Changes) == 0 {
		return nil
	}

	fmt.Fprint(out, "\nChanges to be committed:\n\n")
	for _, c := range st.Changes {
		line := fmt.Sprintf("%12s: %s", c.Action, c.Path)
		switch c.Action {
		case ugit.ActionNew:
			line = s.added.Render(line)
		case ugit.ActionDeleted:
			line = s.removed.Render(line)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
