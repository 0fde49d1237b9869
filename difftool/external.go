package difftool

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"path/filepath"

	"github.com/Nivl/ugit/internal/errutil"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// exitChanges is the exit code used by diff and diff3 when the files
// differ or when a merge has conflicts
const exitChanges = 1

// we make sure the struct implements the interface
var _ Tool = (*External)(nil)

// External is a Tool that runs the diff and diff3 binaries
type External struct {
	fs afero.Fs

	// TempDir is the directory in which the temporary files are
	// created. Defaults to the default directory for temporary files
	TempDir string
	// DiffBin is the name or path of the diff binary
	DiffBin string
	// Diff3Bin is the name or path of the diff3 binary
	Diff3Bin string
}

// NewExternal returns a tool using the diff and diff3 binaries
// available in the PATH
func NewExternal() *External {
	return &External{
		// the binaries can only access the real filesystem
		fs:       afero.NewOsFs(),
		DiffBin:  "diff",
		Diff3Bin: "diff3",
	}
}

// Diff returns a unified diff between from and to
func (e *External) Diff(ctx context.Context, path string, from, to []byte) ([]byte, error) {
	out, _, err := e.run(ctx, e.DiffBin, []string{
		"--unified",
		"--show-c-function",
		"--label", "a/" + path,
		"--label", "b/" + path,
	}, from, to)
	if err != nil {
		return nil, errors.Wrapf(err, "could not diff %s", path)
	}
	return out, nil
}

// Merge runs a three-way merge using diff3
func (e *External) Merge(ctx context.Context, in MergeInput) (*MergeOutput, error) {
	out, conflicts, err := e.run(ctx, e.Diff3Bin, []string{
		"-m",
		"-L", LabelHead,
		"-L", LabelBase,
		"-L", LabelMergeHead,
	}, in.Head, in.Base, in.MergeHead)
	if err != nil {
		return nil, errors.Wrapf(err, "could not merge %s", in.Path)
	}
	return &MergeOutput{
		Content:   out,
		Conflicts: conflicts,
	}, nil
}

// run writes the inputs in temporary files, and runs the binary
// with args followed by the paths of the files.
// changes is true when the binary exited with status 1
func (e *External) run(ctx context.Context, bin string, args []string, inputs ...[]byte) (out []byte, changes bool, err error) {
	dir, err := afero.TempDir(e.fs, e.TempDir, "ugit-")
	if err != nil {
		return nil, false, errors.Wrap(err, "could not create temporary directory")
	}
	defer errutil.Run(func() error {
		return e.fs.RemoveAll(dir)
	}, &err)

	for _, input := range inputs {
		p := filepath.Join(dir, uuid.NewString())
		if err = afero.WriteFile(e.fs, p, input, 0o600); err != nil {
			return nil, false, errors.Wrap(err, "could not write temporary file")
		}
		args = append(args, p)
	}

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	slog.Debug("running external tool", "cmd", cmd.String())

	runErr := cmd.Run()
	if runErr == nil {
		return stdout.Bytes(), false, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) && exitErr.ExitCode() == exitChanges {
		return stdout.Bytes(), true, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, false, errors.Wrapf(ErrToolInvocation, "%s: %s", bin, ctxErr.Error())
	}
	return nil, false, errors.Wrapf(ErrToolInvocation, "%s: %s: %s", bin, runErr.Error(), bytes.TrimSpace(stderr.Bytes()))
}
