// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jpath implements a minimal JSONPath expression parser, and a
// matcher that selects document paths by expression.
package jpath

import (
	"fmt"
	"regexp"
	"strings"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = ".." name
  step = "[" value "]"
  step = "[" slice "]"
  name = WORD
  name = "'" QTEXT "'"
  name = "*"
 value = name
 value = INDEX
 value = script
 value = filter
 slice = [INDEX] ":" [INDEX]
script = "(" TEXT ")"
filter = "?(" TEXT ")"

  WORD = RE `\w+`
 QTEXT = RE `[^']*`
 INDEX = RE `-?\d+(,-?\d+)*`
  TEXT = { all text with nested parentheses }

Source:
  https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html
*/

// An Expr is a parsed JSONPath expression.
type Expr []Step

// A SyntaxError reports a failure to parse an expression.
type SyntaxError struct {
	Offset  int    // byte offset in the input where the error occurred
	Message string // description of the error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at offset %d: %s", e.Offset, e.Message)
}

// Parse parses s as a JSONPath expression. Errors have concrete type
// *SyntaxError.
func Parse(s string) (Expr, error) {
	p := &parser{input: s}
	st, err := p.parseExpr()
	if err != nil {
		return Expr{}, err
	}
	return st, nil
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		switch s.Op {
		case Member, Recur:
			if s.Arg2 == "qname" {
				fmt.Fprintf(&buf, "%s'%s'", s.Op, s.Arg1)
			} else {
				fmt.Fprint(&buf, s.Op, s.Arg1)
			}

		case Slice:
			fmt.Fprintf(&buf, "[%s:%s]", s.Arg1, s.Arg2)

		case Script:
			fmt.Fprintf(&buf, "[(%s)]", s.Arg1)

		case Filter:
			fmt.Fprintf(&buf, "[?(%s)]", s.Arg1)

		case QName:
			fmt.Fprintf(&buf, "['%s']", s.Arg1)

		default:
			fmt.Fprintf(&buf, "[%s]", s.Arg1)
		}
	}
	return buf.String()
}

// parser holds the unconsumed suffix of the input, so that errors can
// report their offset.
type parser struct {
	input string
	rest  string
}

func (p *parser) fail(msg string, args ...any) error {
	return &SyntaxError{
		Offset:  len(p.input) - len(p.rest),
		Message: fmt.Sprintf(msg, args...),
	}
}

func (p *parser) cut(prefix string) bool {
	t, ok := strings.CutPrefix(p.rest, prefix)
	if ok {
		p.rest = t
	}
	return ok
}

func (p *parser) match(re *regexp.Regexp) (string, bool) {
	m := re.FindStringSubmatch(p.rest)
	if m == nil {
		return "", false
	}
	p.rest = p.rest[len(m[0]):]
	return m[1], true
}

func (p *parser) parseExpr() ([]Step, error) {
	p.rest = p.input
	if !p.cut("$") {
		return nil, p.fail("missing root marker")
	}
	var steps []Step
	for p.rest != "" {
		step, err := p.parseStep()
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (p *parser) parseStep() (Step, error) {
	if p.cut("..") {
		kind, name, err := p.parseName()
		if err != nil {
			return Step{}, p.fail("invalid ..name: %v", err)
		}
		return Step{Op: Recur, Arg1: name, Arg2: kind.String()}, nil
	}
	if p.cut(".") {
		kind, name, err := p.parseName()
		if err != nil {
			return Step{}, p.fail("invalid .name: %v", err)
		}
		return Step{Op: Member, Arg1: name, Arg2: kind.String()}, nil
	}
	if p.cut("[") {
		out, err := p.parseValue()
		if err != nil {
			return Step{}, err
		}
		if out.Op == Slice {
			if end, ok := p.match(indexRE); ok {
				out.Arg2 = end
			}
		}
		if !p.cut("]") {
			return Step{}, p.fail("missing close bracket")
		}
		return out, nil
	}
	return Step{}, p.fail("invalid path step")
}

func (p *parser) parseName() (Op, string, error) {
	if p.cut("*") {
		return Wildcard, "*", nil
	}
	if name, ok := p.match(wordRE); ok {
		return Name, name, nil
	}
	if name, ok := p.match(quoteRE); ok {
		return QName, name, nil
	}
	return Invalid, "", fmt.Errorf("invalid name")
}

func (p *parser) parseValue() (Step, error) {
	if p.cut("?(") {
		text, err := p.parseScript()
		return Step{Op: Filter, Arg1: text}, err
	}
	if p.cut("(") {
		text, err := p.parseScript()
		return Step{Op: Script, Arg1: text}, err
	}
	if text, ok := p.match(indexRE); ok {
		if p.cut(":") {
			return Step{Op: Slice, Arg1: text}, nil
		}
		return Step{Op: Index, Arg1: text}, nil
	}
	if p.cut(":") {
		return Step{Op: Slice}, nil
	}
	if kind, text, err := p.parseName(); err == nil {
		return Step{Op: kind, Arg1: text}, nil
	}
	return Step{}, p.fail("invalid value: %q", p.rest)
}

func (p *parser) parseScript() (string, error) {
	s := p.rest
	i, np := 0, 1
	for i < len(s) {
		if s[i] == ')' {
			np--
			if np == 0 {
				break
			}
		} else if s[i] == '(' {
			np++
		}
		i++
	}
	if np > 0 {
		return "", p.fail("unbalanced parentheses")
	}
	p.rest = s[i+1:]
	return s[:i], nil
}

var (
	wordRE  = regexp.MustCompile(`^(\w+)`)
	indexRE = regexp.MustCompile(`^(-?\d+(?:,-?\d+)*)`)
	quoteRE = regexp.MustCompile(`^'([^\']*)'`)
)

// An Op is a path operator.
type Op byte

const (
	Invalid  Op = iota // invalid operator
	Member             // member lookup (.)
	Index              // array index lookup
	Slice              // array slice
	Wildcard           // wildcard expansion (*)
	Name               // unquoted name expansion
	QName              // quoted name expansion
	Recur              // recur operator
	Filter             // filter operator
	Script             // script operator
)

var opText = map[Op]string{
	Invalid:  "invalid",
	Member:   ".",
	Index:    "index",
	Slice:    "slice",
	Wildcard: "*",
	Name:     "name",
	QName:    "qname",
	Recur:    "..",
	Filter:   "?(...)",
	Script:   "(...)",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return opText[Invalid]
}

// A Step is a single step of a JSONPath expression.
type Step struct {
	Op   Op
	Arg1 string
	Arg2 string
}
