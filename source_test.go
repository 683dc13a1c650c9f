// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jch_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/jch"
	"github.com/creachadair/jch/event"
)

func readAll(t *testing.T, src jch.Source) string {
	t.Helper()
	var buf []byte
	for {
		pos := src.Tell()
		p, pok := src.Peek()
		c, ok := src.Take()
		if p != c || pok != ok {
			t.Fatalf("At %d: Peek (%q, %v) != Take (%q, %v)", pos, p, pok, c, ok)
		}
		if !ok {
			if src.Tell() != pos {
				t.Fatalf("Take at end moved from %d to %d", pos, src.Tell())
			}
			return string(buf)
		}
		if got := src.Tell(); got != pos+1 {
			t.Fatalf("After Take: Tell is %d, want %d", got, pos+1)
		}
		buf = append(buf, c)
	}
}

func TestSources(t *testing.T) {
	for _, input := range []string{"", "x", `{"a": [1, 2, 3]}`, "with\x00nul"} {
		srcs := map[string]jch.Source{
			"Bytes":   jch.NewBytesSource([]byte(input)),
			"Reader":  jch.NewReaderSource(strings.NewReader(input)),
			"OneByte": jch.NewReaderSource(iotest.OneByteReader(strings.NewReader(input))),
		}
		for name, src := range srcs {
			if got := readAll(t, src); got != input {
				t.Errorf("%s: got %q, want %q", name, got, input)
			}
			if _, ok := src.Peek(); ok {
				t.Errorf("%s: Peek after end reported a byte", name)
			}
		}
	}
}

func TestReaderSourceError(t *testing.T) {
	errBoom := errors.New("boom")
	src := jch.NewReaderSource(io.MultiReader(strings.NewReader("[1"), iotest.ErrReader(errBoom)))
	if got := readAll(t, src); got != "[1" {
		t.Errorf("Read: got %q, want %q", got, "[1")
	}
	if !errors.Is(src.Err(), errBoom) {
		t.Errorf("Err: got %v, want %v", src.Err(), errBoom)
	}

	ok := jch.NewReaderSource(strings.NewReader("[1]"))
	readAll(t, ok)
	if err := ok.Err(); err != nil {
		t.Errorf("Err: got %v, want nil", err)
	}
}

func TestReaderSourceErrorParse(t *testing.T) {
	errBoom := errors.New("boom")

	// The bytes before the failure form a complete document, so the parse
	// itself succeeds and only Err reports the problem.
	src := jch.NewReaderSource(io.MultiReader(strings.NewReader("123"), iotest.ErrReader(errBoom)))
	var rec event.Recorder
	if err := jch.Parse(rec.Sink(), src); err != nil {
		t.Errorf("Parse: unexpected error: %v", err)
	}
	if !errors.Is(src.Err(), errBoom) {
		t.Errorf("Err: got %v, want %v", src.Err(), errBoom)
	}

	// Otherwise the failure looks like truncated input.
	src = jch.NewReaderSource(io.MultiReader(strings.NewReader("[1,"), iotest.ErrReader(errBoom)))
	if err := jch.Parse(rec.Sink(), src); !jch.IsSyntaxError(err) {
		t.Errorf("Parse: got %v, want a syntax error", err)
	}
	if !errors.Is(src.Err(), errBoom) {
		t.Errorf("Err: got %v, want %v", src.Err(), errBoom)
	}
}
