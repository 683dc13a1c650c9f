// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jch/path"
)

// A Matcher reports whether document paths are selected by a compiled
// JSONPath expression.
type Matcher struct {
	expr  Expr
	steps []matchStep
}

type matchStep struct {
	recur bool // skip any number of steps before this one
	test  func(path.Step) bool
}

// Compile parses s as a JSONPath expression and compiles it to a Matcher.
// Filter and script steps, and negative indices, are not supported by the
// matcher and are reported as errors.
func Compile(s string) (*Matcher, error) {
	expr, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return expr.Compile()
}

// MustCompile is as Compile, but panics if compilation fails.
func MustCompile(s string) *Matcher {
	m, err := Compile(s)
	if err != nil {
		panic(fmt.Sprintf("jpath: compile %q: %v", s, err))
	}
	return m
}

// Compile compiles e to a Matcher.
func (e Expr) Compile() (*Matcher, error) {
	m := &Matcher{expr: e}
	for i, s := range e {
		ms, err := compileStep(s)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, s.Op, err)
		}
		m.steps = append(m.steps, ms)
	}
	return m, nil
}

func compileStep(s Step) (matchStep, error) {
	switch s.Op {
	case Member, Recur:
		ms := matchStep{recur: s.Op == Recur}
		if s.Arg2 == Wildcard.String() {
			ms.test = anyStep
		} else {
			ms.test = keyStep(s.Arg1)
		}
		return ms, nil

	case Name, QName:
		return matchStep{test: keyStep(s.Arg1)}, nil

	case Wildcard:
		return matchStep{test: anyStep}, nil

	case Index:
		want := make(map[int]bool)
		for _, f := range strings.Split(s.Arg1, ",") {
			n, err := parseNonNegative(f)
			if err != nil {
				return matchStep{}, err
			}
			want[n] = true
		}
		return matchStep{test: func(p path.Step) bool {
			return p.IsIndex() && want[p.Index()]
		}}, nil

	case Slice:
		lo, hi := 0, -1
		if s.Arg1 != "" {
			n, err := parseNonNegative(s.Arg1)
			if err != nil {
				return matchStep{}, err
			}
			lo = n
		}
		if s.Arg2 != "" {
			n, err := parseNonNegative(s.Arg2)
			if err != nil {
				return matchStep{}, err
			}
			hi = n
		}
		return matchStep{test: func(p path.Step) bool {
			if !p.IsIndex() {
				return false
			}
			i := p.Index()
			return i >= lo && (hi < 0 || i < hi)
		}}, nil

	default:
		return matchStep{}, fmt.Errorf("operator %q is not supported", s.Op)
	}
}

func anyStep(path.Step) bool { return true }

func keyStep(key string) func(path.Step) bool {
	return func(p path.Step) bool { return !p.IsIndex() && p.Key() == key }
}

func parseNonNegative(s string) (int, error) {
	if strings.Contains(s, ",") {
		return 0, fmt.Errorf("invalid slice bound %q", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	} else if n < 0 {
		return 0, fmt.Errorf("negative index %d is not supported", n)
	}
	return n, nil
}

// String returns the expression m was compiled from.
func (m *Matcher) String() string { return m.expr.String() }

// Match reports whether p is exactly one of the locations selected by m.
func (m *Matcher) Match(p path.Path) bool { return matchSteps(m.steps, p, false) }

// Selects reports whether p is one of the locations selected by m, or is
// contained within one of them.
func (m *Matcher) Selects(p path.Path) bool { return matchSteps(m.steps, p, true) }

func matchSteps(ms []matchStep, p path.Path, prefix bool) bool {
	if len(ms) == 0 {
		return prefix || len(p) == 0
	}
	cur := ms[0]
	if !cur.recur {
		return len(p) > 0 && cur.test(p[0]) && matchSteps(ms[1:], p[1:], prefix)
	}
	for i := range p {
		if cur.test(p[i]) && matchSteps(ms[1:], p[i+1:], prefix) {
			return true
		}
	}
	return false
}
