// Package testutil defines support code for unit tests.
package testutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creachadair/jch/event"
	"github.com/creachadair/jch/rapid"
	"github.com/google/go-cmp/cmp"
)

// DiffStrings compares want and got line by line, ignoring leading and
// trailing whitespace, and returns a diff (-want, +got) or "".
func DiffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

// Trace renders the events recorded by r followed by a line describing the
// outcome of the parse: "." for success, or "! offset: message" for a parse
// error.
func Trace(r *event.Recorder, err error) string {
	var buf strings.Builder
	for _, s := range r.Strings() {
		buf.WriteString(s)
		buf.WriteByte('\n')
	}
	var perr *rapid.ParseError
	switch {
	case err == nil:
		buf.WriteString(".")
	case errors.As(err, &perr):
		fmt.Fprintf(&buf, "! %d: %s", perr.Offset, perr.Code)
	default:
		fmt.Fprintf(&buf, "! %v", err)
	}
	return buf.String()
}
