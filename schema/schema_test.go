// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package schema_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/jch"
	"github.com/creachadair/jch/rapid"
	"github.com/creachadair/jch/schema"
	"github.com/google/go-cmp/cmp"
)

func collect(t *testing.T, flags rapid.Flags, docs ...string) *schema.Collector {
	t.Helper()
	var c schema.Collector
	for _, doc := range docs {
		if err := jch.Parse(c.Sink(), jch.NewBytesSource([]byte(doc)), jch.WithFlags(flags)); err != nil {
			t.Fatalf("Parse %#q: %v", doc, err)
		}
	}
	return &c
}

// report formats pairs of kinds and paths as Report does.
func report(pairs ...string) string {
	var buf strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&buf, "%-35s %s\n", pairs[i], pairs[i+1])
	}
	return buf.String()
}

func TestReport(t *testing.T) {
	tests := []struct {
		name  string
		flags rapid.Flags
		docs  []string
		want  string
	}{
		{"Empty", 0, nil, ""},
		{"Root", 0, []string{"null", `"abc"`}, report("[string[<=3]:1,null:1]", ".")},
		{"Mixed", 0, []string{
			`{"a":1,"b":[true,false],"c":[{"d":"xy"},{"d":"héllo","e":-5},{"d":null,"e":-1}],"f":2.5}`,
			`{"a": 70, "f": -1e3, "g": {}}`,
		}, report(
			"uint[<=70]:2", "a",
			"bool:2", "b/[]",
			"[string[<=5]:2,null:1]", "c/[]/d",
			"int[-5,-1]:2", "c/[]/e",
			"float[-1000,2.5]:2", "f",
		)},
		{"Raw", rapid.NumbersAsStrings, []string{`[1, -2, 3.5, 18446744073709551615]`}, report(
			"[uint[<=18446744073709551615]:2,int[-2,-2]:1,float[3.5,3.5]:1]", "[]",
		)},
		{"Nested", 0, []string{`[[1, 2], [3], [[4]]]`}, report(
			"uint[<=3]:3", "[]/[]",
			"uint[<=4]:1", "[]/[]/[]",
		)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := collect(t, tc.flags, tc.docs...)
			if diff := cmp.Diff(tc.want, c.String()); diff != "" {
				t.Errorf("Report (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestStats(t *testing.T) {
	c := collect(t, 0, `{"x": [1, 5, -3, -9, 0.5, "one", "three"]}`)
	if diff := cmp.Diff([]string{"x/[]"}, c.Paths()); diff != "" {
		t.Errorf("Paths (-want, +got):\n%s", diff)
	}
	want := []schema.Stat{
		{Kind: schema.String, Count: 2, MaxLen: 5},
		{Kind: schema.Unsigned, Count: 2, MaxUint: 5},
		{Kind: schema.Signed, Count: 2, MinInt: -9, MaxInt: -3},
		{Kind: schema.Float, Count: 1, MinFloat: 0.5, MaxFloat: 0.5},
	}
	if diff := cmp.Diff(want, c.Stats("x/[]")); diff != "" {
		t.Errorf("Stats (-want, +got):\n%s", diff)
	}
	if got := c.Stats("nonesuch"); got != nil {
		t.Errorf("Stats for a missing path: got %v, want nil", got)
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[schema.Kind]string{
		schema.String: "string", schema.Unsigned: "uint", schema.Signed: "int",
		schema.Float: "float", schema.Boolean: "bool", schema.Null: "null",
		schema.Kind(99): "invalid",
	} {
		if got := k.String(); got != want {
			t.Errorf("Kind %d: got %q, want %q", k, got, want)
		}
	}
}
