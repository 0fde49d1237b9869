package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Nivl/ugit"
	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/ginternals/object"
	"github.com/Nivl/ugit/internal/errutil"
	"github.com/spf13/cobra"
)

func newLogCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log [REF]",
		Short: "Show the commit history",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		name := ginternals.HeadAlias
		if len(args) > 0 {
			name = args[0]
		}
		return logCmd(cmd.OutOrStdout(), cfg, name)
	}

	return cmd
}

func logCmd(out io.Writer, cfg *globalFlags, name string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	oid, err := r.ResolveName(name)
	if err != nil {
		return err
	}
	refs, err := r.RefsByOid()
	if err != nil {
		return err
	}

	s := newStyles(out, cfg.env)
	it := r.Ancestors(oid)
	for it.Next() {
		printCommit(out, s, it.Commit(), refs[it.Oid()])
	}
	return it.Err()
}

// printCommit prints the header and the message of a commit
func printCommit(out io.Writer, s styles, c *object.Commit, refs []string) {
	fmt.Fprint(out, s.commit.Render("commit "+c.ID().String()))
	if len(refs) > 0 {
		sort.Strings(refs)
		styled := make([]string, 0, len(refs))
		for _, ref := range refs {
			if ref == ginternals.Head {
				styled = append(styled, s.head.Render(ref))
				continue
			}
			styled = append(styled, s.ref.Render(ref))
		}
		fmt.Fprint(out, " ("+strings.Join(styled, ", ")+")")
	}
	fmt.Fprint(out, "\n")
	if parents := c.ParentIDs(); len(parents) > 1 {
		for _, p := range parents[1:] {
			fmt.Fprintf(out, "Merge: %s\n", p.Short())
		}
	}
	fmt.Fprint(out, "\n")
	for _, line := range strings.Split(c.Message(), "\n") {
		fmt.Fprintf(out, "    %s\n", line)
	}
	fmt.Fprint(out, "\n")
}

// parentFiles returns the files of a commit's first parent, or
// nothing for root commits
func parentFiles(r *ugit.Repository, c *object.Commit) (ugit.TreeMap, error) {
	parents := c.ParentIDs()
	if len(parents) == 0 {
		return ugit.TreeMap{}, nil
	}
	return r.CommitTree(parents[0])
}
