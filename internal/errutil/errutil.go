// Package errutil contains methods to simplify working with error
package errutil

import (
	"io"
	"log/slog"
)

// Close closes the closer and sets the error to err if err is nil
func Close(c io.Closer, err *error) { //nolint: gocritic // the pointer of pointer is on purpose so we can change the value if it's nil
	Run(c.Close, err)
}

// Run runs the cleanup function f and sets its error to err if err
// is nil. If err is already set, the error returned by f is logged
func Run(f func() error, err *error) { //nolint: gocritic // see Close
	e := f()
	switch *err { //nolint: errorlint // no need to use errors.Is here since we're only checking for "is nil or not"
	case nil:
		*err = e
	default:
		if e != nil {
			slog.Warn("cleanup failed", "error", e)
		}
	}
}
