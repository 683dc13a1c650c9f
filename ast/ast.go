// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a tree representation of JSON values, and a builder
// that constructs trees from parser events.
package ast

import (
	"strconv"
	"strings"

	"github.com/creachadair/jch/internal/escape"

	"go4.org/mem"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// JSON returns the compact JSON encoding of the value.
	JSON() string

	appendJSON([]byte) []byte
}

// An Object is a collection of key-value members, in input order.
type Object []*Member

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Len returns the number of members of o.
func (o Object) Len() int { return len(o) }

func (o Object) JSON() string { return string(o.appendJSON(nil)) }

func (o Object) appendJSON(buf []byte) []byte {
	buf = append(buf, '{')
	for i, m := range o {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = m.appendJSON(buf)
	}
	return append(buf, '}')
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

func (m *Member) JSON() string { return string(m.appendJSON(nil)) }

func (m *Member) appendJSON(buf []byte) []byte {
	buf = escape.AppendQuote(buf, mem.S(m.Key))
	buf = append(buf, ':')
	return m.Value.appendJSON(buf)
}

// An Array is a sequence of values.
type Array []Value

// Len returns the number of elements of a.
func (a Array) Len() int { return len(a) }

func (a Array) JSON() string { return string(a.appendJSON(nil)) }

func (a Array) appendJSON(buf []byte) []byte {
	buf = append(buf, '[')
	for i, v := range a {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = v.appendJSON(buf)
	}
	return append(buf, ']')
}

// NumberKind records which representation a Number carries.
type NumberKind byte

// Constants defining the valid NumberKind values.
const (
	IntKind   NumberKind = iota + 1 // a negative integer
	UintKind                        // a non-negative integer
	FloatKind                       // a floating-point value
	RawKind                         // unconverted number text
)

// A Number is a numeric value.
type Number struct {
	kind  NumberKind
	int   int64
	uint  uint64
	float float64
	raw   string
}

// Kind reports which representation n carries.
func (n Number) Kind() NumberKind { return n.kind }

// Int64 returns n as a signed integer, truncating a float value.
func (n Number) Int64() int64 {
	switch n.kind {
	case UintKind:
		return int64(n.uint)
	case FloatKind:
		return int64(n.float)
	case RawKind:
		v, _ := strconv.ParseInt(n.raw, 10, 64)
		return v
	}
	return n.int
}

// Uint64 returns n as an unsigned integer, truncating a float value.
func (n Number) Uint64() uint64 {
	switch n.kind {
	case IntKind:
		return uint64(n.int)
	case FloatKind:
		return uint64(n.float)
	case RawKind:
		v, _ := strconv.ParseUint(n.raw, 10, 64)
		return v
	}
	return n.uint
}

// Float64 returns n as a floating-point value.
func (n Number) Float64() float64 {
	switch n.kind {
	case IntKind:
		return float64(n.int)
	case UintKind:
		return float64(n.uint)
	case RawKind:
		v, _ := strconv.ParseFloat(n.raw, 64)
		return v
	}
	return n.float
}

func (n Number) JSON() string { return string(n.appendJSON(nil)) }

func (n Number) appendJSON(buf []byte) []byte {
	switch n.kind {
	case IntKind:
		return strconv.AppendInt(buf, n.int, 10)
	case UintKind:
		return strconv.AppendUint(buf, n.uint, 10)
	case RawKind:
		return append(buf, n.raw...)
	}
	s := strconv.FormatFloat(n.float, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return append(buf, s...)
}

// Int returns a Number with the given signed value.
func Int(v int64) Number {
	if v >= 0 {
		return Number{kind: UintKind, uint: uint64(v)}
	}
	return Number{kind: IntKind, int: v}
}

// Uint returns a Number with the given unsigned value.
func Uint(v uint64) Number { return Number{kind: UintKind, uint: v} }

// Float returns a Number with the given floating-point value.
func Float(v float64) Number { return Number{kind: FloatKind, float: v} }

// Raw returns a Number with the given unconverted text. The caller is
// responsible for ensuring that text is a valid JSON number.
func Raw(text string) Number { return Number{kind: RawKind, raw: text} }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (b Bool) JSON() string { return string(b.appendJSON(nil)) }

func (b Bool) appendJSON(buf []byte) []byte { return strconv.AppendBool(buf, bool(b)) }

// A String is a string value. Its content is the decoded text.
type String string

func (s String) JSON() string { return string(s.appendJSON(nil)) }

func (s String) appendJSON(buf []byte) []byte { return escape.AppendQuote(buf, mem.S(string(s))) }

// Null represents the null constant.
type Null struct{}

func (Null) JSON() string { return "null" }

func (Null) appendJSON(buf []byte) []byte { return append(buf, "null"...) }
