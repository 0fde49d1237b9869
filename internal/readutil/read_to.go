// Package readutil contains methods to parse raw data
package readutil

import "bytes"

// ReadTo reads from b until to is seen and returns the bytes between the start
// and to, exclusive of to. Returns nil if it's not found
func ReadTo(b []byte, to byte) []byte {
	i := bytes.IndexByte(b, to)
	if i < 0 {
		return nil
	}
	return b[0:i]
}

// SplitLines splits b after each \n. The separator is kept and no
// empty trailing line is returned.
// "a\nb" returns ["a\n", "b"]
func SplitLines(b []byte) [][]byte {
	if len(b) == 0 {
		return [][]byte{}
	}
	lines := bytes.SplitAfter(b, []byte{'\n'})
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}
