// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jch

import (
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func TestStreamAdapter(t *testing.T) {
	a := streamAdapter{NewBytesSource([]byte("ab"))}

	steps := []struct {
		peek, take byte
		tell       int
	}{
		{'a', 'a', 1},
		{'b', 'b', 2},
		{0, 0, 2}, // end of input is reported as 0
		{0, 0, 2},
	}
	for i, s := range steps {
		if got := a.Peek(); got != s.peek {
			t.Errorf("Step %d: Peek = %q, want %q", i+1, got, s.peek)
		}
		if got := a.Take(); got != s.take {
			t.Errorf("Step %d: Take = %q, want %q", i+1, got, s.take)
		}
		if got := a.Tell(); got != s.tell {
			t.Errorf("Step %d: Tell = %d, want %d", i+1, got, s.tell)
		}
	}

	if got := a.PutBegin(); got != nil {
		t.Errorf("PutBegin: got %q, want nil", got)
	}
	mtest.MustPanic(t, func() { a.Put('x') })
	mtest.MustPanic(t, func() { a.Flush() })
	mtest.MustPanic(t, func() { a.PutEnd(nil) })
}

// logSink records each call it receives as a line of text, and returns the
// configured result.
type logSink struct {
	log    []string
	result bool
}

func (s *logSink) pr(msg string, args ...any) bool {
	s.log = append(s.log, fmt.Sprintf(msg, args...))
	return s.result
}

func (s *logSink) Null() bool                           { return s.pr("Null") }
func (s *logSink) Bool(b bool) bool                     { return s.pr("Bool %v", b) }
func (s *logSink) Int(i int32) bool                     { return s.pr("Int %d", i) }
func (s *logSink) Uint(u uint32) bool                   { return s.pr("Uint %d", u) }
func (s *logSink) Int64(i int64) bool                   { return s.pr("Int64 %d", i) }
func (s *logSink) Uint64(u uint64) bool                 { return s.pr("Uint64 %d", u) }
func (s *logSink) Double(f float64) bool                { return s.pr("Double %g", f) }
func (s *logSink) RawNumber(str []byte, copy bool) bool { return s.pr("RawNumber %s %v", str, copy) }
func (s *logSink) String(str []byte, copy bool) bool    { return s.pr("String %s %v", str, copy) }
func (s *logSink) StartObject() bool                    { return s.pr("StartObject") }
func (s *logSink) Key(str []byte, copy bool) bool       { return s.pr("Key %s %v", str, copy) }
func (s *logSink) EndObject(n int) bool                 { return s.pr("EndObject %d", n) }
func (s *logSink) StartArray() bool                     { return s.pr("StartArray") }
func (s *logSink) EndArray(n int) bool                  { return s.pr("EndArray %d", n) }

func TestSinkAdapter(t *testing.T) {
	for _, result := range []bool{true, false} {
		s := &logSink{result: result}
		a := sinkAdapter{s}

		got := []bool{
			a.Null(), a.Bool(true), a.Int(-3), a.Uint(4), a.Int64(-5), a.Uint64(6),
			a.Double(7.5), a.RawNumber([]byte("8"), true), a.String([]byte("s"), false),
			a.StartObject(), a.Key([]byte("k"), true), a.EndObject(1),
			a.StartArray(), a.EndArray(2),
		}
		for i, ok := range got {
			if ok != result {
				t.Errorf("Call %d: got %v, want %v", i+1, ok, result)
			}
		}

		want := strings.Split(strings.TrimSpace(`
Null
Bool true
Int -3
Uint 4
Int64 -5
Uint64 6
Double 7.5
RawNumber 8 true
String s false
StartObject
Key k true
EndObject 1
StartArray
EndArray 2`), "\n")
		if diff := cmp.Diff(want, s.log); diff != "" {
			t.Errorf("Forwarded calls (-want, +got):\n%s", diff)
		}
	}
}
