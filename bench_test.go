package jch_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/creachadair/jch"
	"github.com/creachadair/jch/ast"
	"github.com/creachadair/jch/event"
)

// nopSink accepts every event and converts nothing, since the parser has
// already converted strings and numbers by the time they are delivered.
var nopSink = event.Func(func(event.Event) bool { return true })

func BenchmarkParse(b *testing.B) {
	input := []byte(bigDocument())
	b.Logf("Benchmark input: %d bytes", len(input))
	path := filepath.Join(b.TempDir(), "input.json")
	if err := os.WriteFile(path, input, 0600); err != nil {
		b.Fatalf("Write input: %v", err)
	}

	b.Run("Decoder", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Bytes", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			if err := jch.Parse(nopSink, jch.NewBytesSource(input)); err != nil {
				b.Fatalf("Parse: %v", err)
			}
		}
	})

	b.Run("Reader", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			if err := jch.Parse(nopSink, jch.NewReaderSource(bytes.NewReader(input))); err != nil {
				b.Fatalf("Parse: %v", err)
			}
		}
	})

	b.Run("File", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			if err := jch.ParseFile(path, nopSink); err != nil {
				b.Fatalf("ParseFile: %v", err)
			}
		}
	})

	b.Run("Tree", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			if _, err := ast.ParseBytes(input); err != nil {
				b.Fatalf("Parse: %v", err)
			}
		}
	})
}
