package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/Nivl/ugit/ginternals/object"
	"github.com/Nivl/ugit/internal/errutil"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func newHashObjectCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-object FILE",
		Short: "Compute object ID and creates a blob from a file",
		Args:  cobra.ExactArgs(1),
	}

	typ := cmd.Flags().StringP("type", "t", "blob", "Specify the type")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return hashObjectCmd(cmd.OutOrStdout(), cfg, args[0], *typ)
	}

	return cmd
}

func hashObjectCmd(out io.Writer, cfg *globalFlags, filePath, typ string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(cfg.C.String(), filePath)
	}
	content, err := afero.ReadFile(r.Config.FS, filePath)
	if err != nil {
		return err
	}

	var o *object.Object
	switch typ {
	case object.TypeBlob.String():
		o = object.New(object.TypeBlob, content)
	case object.TypeCommit.String():
		o = object.New(object.TypeCommit, content)
		if _, err = o.AsCommit(); err != nil {
			return xerrors.Errorf("invalid commit file: %w", err)
		}
	case object.TypeTree.String():
		o = object.New(object.TypeTree, content)
		if _, err = o.AsTree(); err != nil {
			return xerrors.Errorf("invalid tree file: %w", err)
		}
	default:
		return xerrors.Errorf("unsupported object type %s", typ)
	}

	oid, err := r.WriteObject(o)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, oid.String())
	return nil
}
