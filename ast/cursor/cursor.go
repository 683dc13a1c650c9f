// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the tree of a JSON value.
package cursor

import (
	"fmt"

	"github.com/creachadair/jch/ast"
	"github.com/creachadair/jch/path"
)

// Get traverses p from v and returns the value reached. This is a
// convenience wrapper for creating a cursor, moving it down p, and
// retrieving its value.
func Get[T ast.Value](v ast.Value, p path.Path) (T, error) {
	c := New(v).Down(p...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	t, ok := c.Value().(T)
	if !ok {
		return result, fmt.Errorf("wrong value type %T", c.Value())
	}
	return t, nil
}

// A Cursor is a pointer that navigates into the structure of an ast.Value.
type Cursor struct {
	org  ast.Value
	stk  []ast.Value
	path path.Path
	err  error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin ast.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() ast.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() ast.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the steps from the origin to the current location of c.
// Negative array indices are reported as the offsets they resolved to.
func (c *Cursor) Path() path.Path { return c.path.Clone() }

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
		c.path = c.path[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.path = c.path[:0]; c.err = nil }

// Down traverses a sequence of steps from the current value. A key step
// selects the value of an object member with that key. An index step selects
// an array element; negative indices count backward from the end (-1 is
// last, -2 second last). If a step cannot be resolved, traversal stops at
// the last value reached and an error is recorded. Use Err to recover the
// error.
func (c *Cursor) Down(steps ...path.Step) *Cursor {
	c.err = nil // reset error
	for _, s := range steps {
		switch e := c.Value().(type) {
		case ast.Object:
			if s.IsIndex() {
				return c.setErrorf("cannot index object with %d", s.Index())
			}
			m := e.Find(s.Key())
			if m == nil {
				return c.setErrorf("key %q not found", s.Key())
			}
			c.push(s, m.Value)

		case ast.Array:
			if !s.IsIndex() {
				return c.setErrorf("cannot index array with %q", s.Key())
			}
			i, ok := fixArrayBound(len(e), s.Index())
			if !ok {
				return c.setErrorf("array index %d out of bounds (n=%d)", s.Index(), len(e))
			}
			c.push(path.Index(i), e[i])

		default:
			return c.setErrorf("cannot traverse %T with %v", e, s)
		}
	}
	return c
}

func (c *Cursor) push(s path.Step, v ast.Value) {
	c.stk = append(c.stk, v)
	c.path = append(c.path, s)
}

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// Walk visits v and each value nested within it in depth-first order,
// calling f with the path of each value from v. If f returns false, the
// values nested within that value are skipped. The path passed to f is only
// valid for the duration of the call.
func Walk(v ast.Value, f func(path.Path, ast.Value) bool) {
	walk(nil, v, f)
}

func walk(p path.Path, v ast.Value, f func(path.Path, ast.Value) bool) path.Path {
	if !f(p, v) {
		return p
	}
	switch e := v.(type) {
	case ast.Object:
		for _, m := range e {
			p = walk(append(p, path.Key(m.Key)), m.Value, f)
			p = p[:len(p)-1]
		}
	case ast.Array:
		for i, elt := range e {
			p = walk(append(p, path.Index(i)), elt, f)
			p = p[:len(p)-1]
		}
	}
	return p
}
