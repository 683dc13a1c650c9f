// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package path tracks the location of values within a JSON document as it is
// parsed, and reports each scalar value along with its path.
package path

import (
	"strconv"
	"strings"

	"github.com/creachadair/jch/internal/escape"

	"go4.org/mem"
)

// A Step is a single step of a Path: an object key or an array index.
type Step struct {
	key   string
	index int
	isIdx bool
}

// Key returns a Step selecting the member of an object with the given key.
func Key(key string) Step { return Step{key: key} }

// Index returns a Step selecting the element of an array at offset i.
func Index(i int) Step { return Step{index: i, isIdx: true} }

// IsIndex reports whether s is an array index.
func (s Step) IsIndex() bool { return s.isIdx }

// Key returns the object key of s, or "" if s is an index.
func (s Step) Key() string { return s.key }

// Index returns the array index of s, or -1 if s is a key.
func (s Step) Index() int {
	if s.isIdx {
		return s.index
	}
	return -1
}

func (s Step) String() string {
	if s.isIdx {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// A Path is a sequence of steps from the root of a document to a value.
// The empty path denotes the root.
type Path []Step

// String renders p with steps separated by "/", for example "a/0/b".
func (p Path) String() string {
	ss := make([]string, len(p))
	for i, s := range p {
		ss[i] = s.String()
	}
	return strings.Join(ss, "/")
}

// JQ renders p as a jq path array, for example ["a",0,"b"].
func (p Path) JQ() string {
	buf := []byte{'['}
	for i, s := range p {
		if i > 0 {
			buf = append(buf, ',')
		}
		if s.isIdx {
			buf = strconv.AppendInt(buf, int64(s.index), 10)
		} else {
			buf = escape.AppendQuote(buf, mem.S(s.key))
		}
	}
	return string(append(buf, ']'))
}

// Erased renders p as String does, but with every array index replaced by
// "[]", so that all the elements of an array share a path.
func (p Path) Erased() string {
	ss := make([]string, len(p))
	for i, s := range p {
		if s.isIdx {
			ss[i] = "[]"
		} else {
			ss[i] = s.key
		}
	}
	return strings.Join(ss, "/")
}

// Clone returns a copy of p that does not share storage with it.
func (p Path) Clone() Path { return append(Path(nil), p...) }
