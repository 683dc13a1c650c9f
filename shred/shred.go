// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package shred splits JSON documents into columns, one per path.
//
// Each scalar value of a document is written to a column named for its path
// with array indices removed, so that for example the values at "items/0/id"
// and "items/1/id" are both written to column "items.id". Each value is
// stored as its compact JSON encoding, and the values of a column are kept
// in the order they occur in the input.
package shred

import (
	"strings"

	"github.com/creachadair/jch/path"
)

// A Store is a destination for the columns of a shredded document.
type Store interface {
	// Put appends value to the named column.
	Put(column string, value []byte) error

	// Close flushes any buffered values and releases the resources of the
	// store.
	Close() error
}

// ColumnName returns the name of the column for values at p: the keys of p
// joined by ".", with array indices removed. Spaces and slashes in keys are
// replaced by "_". A path with no keys, or only empty keys, maps to the
// column "_".
func ColumnName(p path.Path) string {
	var keys []string
	for _, s := range p {
		if !s.IsIndex() {
			keys = append(keys, s.Key())
		}
	}
	name := columnEscaper.Replace(strings.Join(keys, "."))
	if name == "" {
		return "_"
	}
	return name
}

var columnEscaper = strings.NewReplacer(" ", "_", "/", "_")

// A Shredder writes the leaf values reported by a path.Tracker to a Store.
type Shredder struct {
	st  Store
	buf []byte
	n   int64
	err error
}

// New constructs a Shredder that writes to st.
func New(st Store) *Shredder { return &Shredder{st: st} }

// Sink returns a jch.Sink that shreds the document it receives into s.
func (s *Shredder) Sink() *path.Tracker { return path.NewTracker(s.Add) }

// Add writes v to the column for p. If the store reports an error, Add
// records it and returns false so that parsing stops.
func (s *Shredder) Add(p path.Path, v path.Leaf) bool {
	s.buf = v.AppendJSON(s.buf[:0])
	if err := s.st.Put(ColumnName(p), s.buf); err != nil {
		s.err = err
		return false
	}
	s.n++
	return true
}

// Count reports the number of values written by s.
func (s *Shredder) Count() int64 { return s.n }

// Err reports the first error returned by the store, if any. If a parse
// stopped because the Sink returned false, Err reports the reason.
func (s *Shredder) Err() error { return s.err }
