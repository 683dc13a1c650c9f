// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package path

import (
	"strconv"

	"github.com/creachadair/jch"
	"github.com/creachadair/jch/internal/escape"

	"go4.org/mem"
)

// Kind is the type of a scalar value.
type Kind byte

// Constants defining the valid Kind values.
const (
	Null   Kind = iota // null
	Bool               // true or false
	Int                // negative integer
	Uint               // non-negative integer
	Float              // number with fraction or exponent, or too large for 64 bits
	Raw                // unconverted number text
	String             // string
)

var kindStr = [...]string{
	Null:   "null",
	Bool:   "bool",
	Int:    "int",
	Uint:   "uint",
	Float:  "float",
	Raw:    "number",
	String: "string",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid"
	}
	return kindStr[k]
}

// A Leaf is a scalar value reported by a Tracker. Only the fields relevant
// to its Kind are populated. Text is only valid for the duration of the
// callback that receives it.
type Leaf struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Uint  uint64
	Float float64
	Text  []byte // Raw and String
}

// AppendJSON appends the JSON encoding of v to dst.
func (v Leaf) AppendJSON(dst []byte) []byte {
	switch v.Kind {
	case Null:
		return append(dst, "null"...)
	case Bool:
		return strconv.AppendBool(dst, v.Bool)
	case Int:
		return strconv.AppendInt(dst, v.Int, 10)
	case Uint:
		return strconv.AppendUint(dst, v.Uint, 10)
	case Float:
		return strconv.AppendFloat(dst, v.Float, 'g', -1, 64)
	case Raw:
		return append(dst, v.Text...)
	case String:
		return escape.AppendQuote(dst, mem.B(v.Text))
	default:
		panic("path: invalid leaf kind")
	}
}

// A Tracker is a jch.Sink that maintains the path of the current value as a
// document is parsed, and passes each scalar value to a callback along with
// its path. Objects and arrays are not reported, but their members and
// elements are.
//
// The Path passed to the callback is only valid for the duration of the
// call. If the callback returns false, parsing stops.
type Tracker struct {
	leaf   func(Path, Leaf) bool
	filter func(Path) bool

	path  Path
	stack []frame
}

type frame struct {
	array bool
	next  int // index of the next element of an array
}

// NewTracker constructs a Tracker that calls f for each scalar value.
func NewTracker(f func(Path, Leaf) bool) *Tracker { return &Tracker{leaf: f} }

// Filter sets a predicate that selects which leaves are reported.  Leaves
// whose paths are not selected are skipped, but parsing continues. A nil
// filter selects every leaf.
func (t *Tracker) Filter(f func(Path) bool) *Tracker { t.filter = f; return t }

// Depth reports the number of objects and arrays currently open.
func (t *Tracker) Depth() int { return len(t.stack) }

// Path returns the path of the value most recently visited. The result is
// only valid until the next call to a method of t.
func (t *Tracker) Path() Path { return t.path }

// begin records the start of a value, advancing the index of an enclosing
// array if there is one.
func (t *Tracker) begin() {
	if n := len(t.stack); n > 0 && t.stack[n-1].array {
		t.path[len(t.path)-1] = Index(t.stack[n-1].next)
		t.stack[n-1].next++
	}
}

func (t *Tracker) open(array bool) bool {
	t.begin()
	t.stack = append(t.stack, frame{array: array})
	t.path = append(t.path, Step{})
	return true
}

func (t *Tracker) close() bool {
	t.stack = t.stack[:len(t.stack)-1]
	t.path = t.path[:len(t.path)-1]
	return true
}

func (t *Tracker) send(v Leaf) bool {
	t.begin()
	if t.filter != nil && !t.filter(t.path) {
		return true
	}
	return t.leaf(t.path, v)
}

func (t *Tracker) Null() bool            { return t.send(Leaf{Kind: Null}) }
func (t *Tracker) Bool(b bool) bool      { return t.send(Leaf{Kind: Bool, Bool: b}) }
func (t *Tracker) Int(i int32) bool      { return t.send(Leaf{Kind: Int, Int: int64(i)}) }
func (t *Tracker) Uint(u uint32) bool    { return t.send(Leaf{Kind: Uint, Uint: uint64(u)}) }
func (t *Tracker) Int64(i int64) bool    { return t.send(Leaf{Kind: Int, Int: i}) }
func (t *Tracker) Uint64(u uint64) bool  { return t.send(Leaf{Kind: Uint, Uint: u}) }
func (t *Tracker) Double(f float64) bool { return t.send(Leaf{Kind: Float, Float: f}) }
func (t *Tracker) StartObject() bool     { return t.open(false) }
func (t *Tracker) EndObject(int) bool    { return t.close() }
func (t *Tracker) StartArray() bool      { return t.open(true) }
func (t *Tracker) EndArray(int) bool     { return t.close() }

func (t *Tracker) RawNumber(str []byte, _ bool) bool {
	return t.send(Leaf{Kind: Raw, Text: str})
}

func (t *Tracker) String(str []byte, _ bool) bool {
	return t.send(Leaf{Kind: String, Text: str})
}

// Key sets the final step of the current path to the member key.
func (t *Tracker) Key(str []byte, _ bool) bool {
	t.path[len(t.path)-1] = Key(string(str))
	return true
}

var _ jch.Sink = (*Tracker)(nil)
