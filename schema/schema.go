// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package schema summarizes the structure of JSON documents.
//
// A Collector records, for each path of a document with array indices
// erased, the kinds of scalar values found there along with simple
// statistics: how many values of each kind, the maximum length of strings,
// and the range of numbers.
package schema

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/jch/path"
)

// Kind is the kind of a value in a schema.
type Kind byte

// Constants defining the valid Kind values, in report order.
const (
	String   Kind = iota // a string value
	Unsigned             // a non-negative integer
	Signed               // a negative integer
	Float                // a number with a fraction or exponent
	Boolean              // true or false
	Null                 // null

	numKinds
)

var kindStr = [...]string{
	String:   "string",
	Unsigned: "uint",
	Signed:   "int",
	Float:    "float",
	Boolean:  "bool",
	Null:     "null",
}

func (k Kind) String() string {
	if k >= numKinds {
		return "invalid"
	}
	return kindStr[k]
}

// A Stat summarizes the values of a single kind found at a path.
// Only the fields relevant to the Kind are populated.
type Stat struct {
	Kind  Kind
	Count int64

	MaxLen   int     // String: the maximum length in runes
	MaxUint  uint64  // Unsigned
	MinInt   int64   // Signed
	MaxInt   int64   // Signed
	MinFloat float64 // Float
	MaxFloat float64 // Float
}

// String renders s in the form kind[range]:count, for example
// "string[<=12]:4" or "int[-5,-1]:2".
func (s Stat) String() string {
	var agg string
	switch s.Kind {
	case String:
		agg = "[<=" + strconv.Itoa(s.MaxLen) + "]"
	case Unsigned:
		agg = "[<=" + strconv.FormatUint(s.MaxUint, 10) + "]"
	case Signed:
		agg = fmt.Sprintf("[%d,%d]", s.MinInt, s.MaxInt)
	case Float:
		agg = fmt.Sprintf("[%g,%g]", s.MinFloat, s.MaxFloat)
	}
	return s.Kind.String() + agg + ":" + strconv.FormatInt(s.Count, 10)
}

// add folds another observation of the same kind into s.
func (s *Stat) add(o Stat) {
	s.Count++
	s.MaxLen = max(s.MaxLen, o.MaxLen)
	s.MaxUint = max(s.MaxUint, o.MaxUint)
	s.MinInt = min(s.MinInt, o.MinInt)
	s.MaxInt = max(s.MaxInt, o.MaxInt)
	s.MinFloat = math.Min(s.MinFloat, o.MinFloat)
	s.MaxFloat = math.Max(s.MaxFloat, o.MaxFloat)
}

// A Collector accumulates a schema from the leaf values of one or more
// documents. The zero value is ready for use.
type Collector struct {
	paths map[string]*[numKinds]*Stat
}

// Sink returns a jch.Sink that records the values of a document into c.
// The same collector may record multiple documents.
func (c *Collector) Sink() *path.Tracker { return path.NewTracker(c.Add) }

// Add records the leaf v found at p. It always returns true, so that it may
// be used as the callback for a path.Tracker.
func (c *Collector) Add(p path.Path, v path.Leaf) bool {
	obs := observe(v)
	key := p.Erased()
	if c.paths == nil {
		c.paths = make(map[string]*[numKinds]*Stat)
	}
	kinds, ok := c.paths[key]
	if !ok {
		kinds = new([numKinds]*Stat)
		c.paths[key] = kinds
	}
	if cur := kinds[obs.Kind]; cur != nil {
		cur.add(obs)
	} else {
		kinds[obs.Kind] = &obs
	}
	return true
}

// observe converts a leaf to a single observation.
func observe(v path.Leaf) Stat {
	switch v.Kind {
	case path.Null:
		return Stat{Kind: Null, Count: 1}
	case path.Bool:
		return Stat{Kind: Boolean, Count: 1}
	case path.String:
		return Stat{Kind: String, Count: 1, MaxLen: utf8.RuneCount(v.Text)}
	case path.Uint:
		return Stat{Kind: Unsigned, Count: 1, MaxUint: v.Uint}
	case path.Int:
		return Stat{Kind: Signed, Count: 1, MinInt: v.Int, MaxInt: v.Int}
	case path.Raw:
		s := string(v.Text)
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return Stat{Kind: Unsigned, Count: 1, MaxUint: u}
		} else if z, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Stat{Kind: Signed, Count: 1, MinInt: z, MaxInt: z}
		}
		f, _ := strconv.ParseFloat(s, 64)
		return Stat{Kind: Float, Count: 1, MinFloat: f, MaxFloat: f}
	default:
		return Stat{Kind: Float, Count: 1, MinFloat: v.Float, MaxFloat: v.Float}
	}
}

// Paths returns the index-erased paths recorded by c, in lexicographic
// order. The root of the document is the empty path.
func (c *Collector) Paths() []string {
	out := make([]string, 0, len(c.paths))
	for p := range c.paths {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// Stats returns the statistics recorded for the given index-erased path,
// ordered by kind. It returns nil if the path was not seen.
func (c *Collector) Stats(p string) []Stat {
	kinds, ok := c.paths[p]
	if !ok {
		return nil
	}
	var out []Stat
	for _, s := range kinds {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// Report writes a text report of the schema to w, one line per path in
// lexicographic order. Each line lists the statistics for the path followed
// by the path; the root is shown as ".".
func (c *Collector) Report(w io.Writer) error {
	for _, p := range c.Paths() {
		stats := c.Stats(p)
		parts := make([]string, len(stats))
		for i, s := range stats {
			parts[i] = s.String()
		}
		kinds := parts[0]
		if len(parts) > 1 {
			kinds = "[" + strings.Join(parts, ",") + "]"
		}
		if p == "" {
			p = "."
		}
		if _, err := fmt.Fprintf(w, "%-35s %s\n", kinds, p); err != nil {
			return err
		}
	}
	return nil
}

// String returns the text of the report generated by Report.
func (c *Collector) String() string {
	var buf strings.Builder
	c.Report(&buf)
	return buf.String()
}
