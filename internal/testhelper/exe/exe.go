// Package exe contains helpers to help running commands
package exe

import (
	"os/exec"
	"testing"
)

// RequireBinaries skips the test if any of the provided binaries
// cannot be found in $PATH
func RequireBinaries(t *testing.T, names ...string) {
	t.Helper()

	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			t.Skipf("%s is not available: %s", name, err.Error())
		}
	}
}
