// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jch

import (
	"errors"
	"os"

	"github.com/creachadair/jch/rapid"
)

// An Option configures the reader used by Parse and ParseFile.
type Option func(*rapid.Reader)

// WithFlags enables the specified reader flags.
func WithFlags(flags rapid.Flags) Option {
	return func(r *rapid.Reader) { r.Flags |= flags }
}

// WithMaxDepth sets the maximum nesting depth of objects and arrays.
// A value of zero or less selects rapid.DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(r *rapid.Reader) { r.MaxDepth = n }
}

func newReader(opts []Option) rapid.Reader {
	var r rapid.Reader
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Parse runs a single parse of the JSON document read from src, delivering
// events to h in document order. It returns nil if the document was parsed
// completely. Otherwise it returns the reader's *rapid.ParseError unchanged,
// giving the reason parsing stopped and the offset at which it stopped.
//
// An empty source is not a valid document, and is reported as
// rapid.ErrDocumentEmpty. If a method of h returns false, parsing stops at
// once and IsAbort reports true for the result.
//
// A Source has no way to report a read error, so a source that fails
// mid-stream looks to Parse like one that ended early. The result may then be
// a syntax error, or nil if the bytes read so far form a complete document.
// When src is a *ReaderSource, the caller must check its Err method after
// Parse returns.
//
// Parse does not retain src or h after it returns.
func Parse(h Sink, src Source, opts ...Option) error {
	return newReader(opts).Parse(streamAdapter{src}, sinkAdapter{h})
}

// ParseFile runs a single parse of the JSON document in the named file,
// delivering events to h. The file is read through a buffer of
// rapid.FileBufferSize bytes rather than through a Source. For the same
// content, the events and result are the same as for Parse.
//
// If the file cannot be opened, or if reading it fails, ParseFile returns a
// *FileError. An open failure is reported before any parsing is attempted.
func ParseFile(name string, h Sink, opts ...Option) error {
	f, err := os.Open(name)
	if err != nil {
		return &FileError{Name: name, Err: err}
	}
	defer f.Close()

	buf := make([]byte, rapid.FileBufferSize)
	fs := rapid.NewFileReadStream(f, buf)
	perr := newReader(opts).Parse(fs, sinkAdapter{h})
	if err := fs.Err(); err != nil {
		return &FileError{Name: name, Err: err}
	}
	return perr
}

// FileError reports a failure to open or read an input file.
type FileError struct {
	Name string // the name of the file
	Err  error  // the underlying error
}

// Error satisfies the error interface.
func (f *FileError) Error() string { return "jch: " + f.Err.Error() }

// Unwrap supports error wrapping.
func (f *FileError) Unwrap() error { return f.Err }

// IsAbort reports whether err records a parse stopped by a Sink method
// returning false.
func IsAbort(err error) bool { return errors.Is(err, rapid.ErrTermination) }

// IsSyntaxError reports whether err records malformed input, as opposed to a
// consumer stop or a file error.
func IsSyntaxError(err error) bool {
	var perr *rapid.ParseError
	return errors.As(err, &perr) && !perr.Aborted()
}
