// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"

	"github.com/creachadair/jch"
)

// Parse parses a single JSON value from src and returns its tree.
func Parse(src jch.Source, opts ...jch.Option) (Value, error) {
	var b Builder
	if err := jch.Parse(&b, src, opts...); err != nil {
		return nil, err
	}
	return b.Result()
}

// ParseBytes parses a single JSON value from data and returns its tree.
func ParseBytes(data []byte, opts ...jch.Option) (Value, error) {
	return Parse(jch.NewBytesSource(data), opts...)
}

// ParseFile parses a single JSON value from the named file and returns its
// tree.
func ParseFile(name string, opts ...jch.Option) (Value, error) {
	var b Builder
	if err := jch.ParseFile(name, &b, opts...); err != nil {
		return nil, err
	}
	return b.Result()
}

// A Builder is a jch.Sink that constructs a tree from the events of a single
// document. The zero value is ready for use.
type Builder struct {
	stk []Value
	out Value
}

// Result returns the value constructed by b. It reports an error if b has
// not received a complete value.
func (b *Builder) Result() (Value, error) {
	if b.out == nil || len(b.stk) != 0 {
		return nil, errors.New("incomplete value")
	}
	return b.out, nil
}

// Reset discards the state of b so that it can be reused.
func (b *Builder) Reset() { b.stk = b.stk[:0]; b.out = nil }

// reduce attaches the completed value v to its enclosing container, or
// records it as the result if there is none.
func (b *Builder) reduce(v Value) bool {
	if len(b.stk) == 0 {
		b.out = v
		return true
	}
	switch prev := b.top().(type) {
	case *Member:
		prev.Value = v
		b.pop()
	case *Array:
		*prev = append(*prev, v)
	}
	return true
}

func (b *Builder) top() Value { return b.stk[len(b.stk)-1] }

func (b *Builder) pop() Value {
	last := b.top()
	b.stk = b.stk[:len(b.stk)-1]
	return last
}

func (b *Builder) push(v Value) bool { b.stk = append(b.stk, v); return true }

func (b *Builder) Null() bool            { return b.reduce(Null{}) }
func (b *Builder) Bool(v bool) bool      { return b.reduce(Bool(v)) }
func (b *Builder) Int(v int32) bool      { return b.reduce(Int(int64(v))) }
func (b *Builder) Uint(v uint32) bool    { return b.reduce(Uint(uint64(v))) }
func (b *Builder) Int64(v int64) bool    { return b.reduce(Int(v)) }
func (b *Builder) Uint64(v uint64) bool  { return b.reduce(Uint(v)) }
func (b *Builder) Double(v float64) bool { return b.reduce(Float(v)) }
func (b *Builder) StartObject() bool     { return b.push(new(Object)) }
func (b *Builder) StartArray() bool      { return b.push(new(Array)) }

func (b *Builder) RawNumber(str []byte, _ bool) bool {
	return b.reduce(Raw(string(str)))
}

func (b *Builder) String(str []byte, _ bool) bool {
	return b.reduce(String(str))
}

// Key adds a new member to the object atop the stack, and pushes it so that
// the value that follows is attached to it.
func (b *Builder) Key(str []byte, _ bool) bool {
	m := &Member{Key: string(str)}
	obj := b.top().(*Object)
	*obj = append(*obj, m)
	return b.push(m)
}

func (b *Builder) EndObject(int) bool {
	obj := b.pop().(*Object)
	return b.reduce(*obj)
}

func (b *Builder) EndArray(int) bool {
	arr := b.pop().(*Array)
	return b.reduce(*arr)
}

var _ jch.Sink = (*Builder)(nil)
