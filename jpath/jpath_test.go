package jpath_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jch/jpath"
	"github.com/creachadair/jch/path"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
	}{
		{"$.store.book[*]..author"},
		{"$..author"},
		{"$.store.*"},
		{"$.store..price"},
		{"$..book[2]"},
		{"$..book[(@.length-1)]"},
		{"$..book[-1:]"},
		{"$..book[0,1]"},
		{"$..book[:2]"},
		{"$..book[?(@.isbn)]"},
		{"$..book[?(@price<10)]"},
		{"$..*"},
		{"$['apple sauce'].pearPlum..'cherry apple'"},
		{"$[a][1:3][b]['c d e']"},
	}
	for _, test := range tests {
		e, err := jpath.Parse(test.input)
		if err != nil {
			t.Errorf("Parse %q: %v", test.input, err)
			continue
		}

		want := test.input
		if got := e.String(); got != want {
			t.Errorf("Parse %q:\n got %q\nwant %q", test.input, got, want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		offset int
	}{
		{"", 0},
		{"store", 0},
		{"$.", 2},
		{"$[1", 3},
		{"$[?(@.x]", 4},
		{"$.a!", 3},
	}
	for _, test := range tests {
		_, err := jpath.Parse(test.input)
		var serr *jpath.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %q: got %v, want *SyntaxError", test.input, err)
			continue
		}
		if serr.Offset != test.offset {
			t.Errorf("Parse %q: offset %d, want %d (%v)", test.input, serr.Offset, test.offset, err)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	for _, input := range []string{
		"$..book[?(@.isbn)]",
		"$..book[(@.length-1)]",
		"$..book[-1]",
		"$..book[-1:]",
		"$[0,x]",
	} {
		if m, err := jpath.Compile(input); err == nil {
			t.Errorf("Compile %q: got %v, want error", input, m)
		}
	}
}

// p constructs a path from a mixture of strings (keys) and ints (indices).
func p(steps ...any) path.Path {
	var out path.Path
	for _, s := range steps {
		switch v := s.(type) {
		case string:
			out = append(out, path.Key(v))
		case int:
			out = append(out, path.Index(v))
		default:
			panic("invalid step")
		}
	}
	return out
}

func TestMatch(t *testing.T) {
	tests := []struct {
		expr    string
		input   path.Path
		match   bool
		selects bool
	}{
		{"$", p(), true, true},
		{"$", p("a"), false, true},
		{"$.a", p("a"), true, true},
		{"$.a", p("b"), false, false},
		{"$.a", p("a", "b"), false, true},
		{"$['a b']", p("a b"), true, true},
		{"$.a[1]", p("a", 1), true, true},
		{"$.a[1]", p("a", 2), false, false},
		{"$.a[0,2]", p("a", 2), true, true},
		{"$.a[1:3]", p("a", 2), true, true},
		{"$.a[1:3]", p("a", 3), false, false},
		{"$.a[1:]", p("a", 300), true, true},
		{"$.a[:2]", p("a", 1, "x"), false, true},
		{"$.a[*]", p("a", 5), true, true},
		{"$.a.*", p("a", "q"), true, true},
		{"$.a[1]", p("a", "1"), false, false},
		{"$..b", p("b"), true, true},
		{"$..b", p("a", 0, "b"), true, true},
		{"$..b", p("a", 0, "c"), false, false},
		{"$..b", p("b", "c"), false, true},
		{"$.store..price", p("store", "book", 3, "price"), true, true},
		{"$.store..price", p("price"), false, false},
		{"$..*", p("x", 1), true, true},
		{"$..book[2]", p("store", "book", 2), true, true},
	}
	for _, test := range tests {
		m := jpath.MustCompile(test.expr)
		if got := m.Match(test.input); got != test.match {
			t.Errorf("Match(%q, %q): got %v, want %v", test.expr, test.input, got, test.match)
		}
		if got := m.Selects(test.input); got != test.selects {
			t.Errorf("Selects(%q, %q): got %v, want %v", test.expr, test.input, got, test.selects)
		}
	}
}
