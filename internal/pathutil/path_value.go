package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
)

// ErrIsNotDirectory is an error returned when a path
// is expected to points to a directory but isn't
var ErrIsNotDirectory = errors.New("path is not a directory")

// DirPathValue represents a Flag value holding the path to a directory.
// The directory doesn't have to exist, but if it does it must be a
// directory
type DirPathValue struct {
	defaultValue string
	userValue    string
	valueSet     bool
}

// NewDirPathFlagWithDefault return a new Flag Value that should hold
// a path to a directory
func NewDirPathFlagWithDefault(defaultPath string) pflag.Value {
	return &DirPathValue{
		defaultValue: defaultPath,
	}
}

// we make sure the struct implements the interface
var _ pflag.Value = (*DirPathValue)(nil)

// String returns the flag's value
func (v *DirPathValue) String() string {
	if v.valueSet {
		return v.userValue
	}
	return v.defaultValue
}

// Set sets the flag's value.
// When called multiple times:
// - If the value is a relative path it will be append to the previous value
// - If the value is an absolute path: it will overwrite the previous value
func (v *DirPathValue) Set(value string) (err error) {
	if value == "" {
		return nil
	}

	if !filepath.IsAbs(value) {
		value = filepath.Join(v.String(), value)
	}
	value, err = filepath.Abs(value)
	if err != nil {
		return fmt.Errorf("could not find absolute path: %w", err)
	}

	info, err := os.Stat(value)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not check path %s: %w", value, err)
	}
	if info != nil && !info.IsDir() {
		return fmt.Errorf("invalid path %s: %w", value, ErrIsNotDirectory)
	}

	v.valueSet = true
	v.userValue = value
	return nil
}

// Type returns the unique type of the Value
func (v *DirPathValue) Type() string {
	return "path"
}
