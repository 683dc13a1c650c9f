// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package writer implements a jch.Sink that renders the events it receives
// as compact JSON text.
//
// A Writer is the inverse of the parser: the events produced by parsing the
// output of a Writer are the same events the Writer received.
package writer

import (
	"bytes"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/jch"
	"github.com/creachadair/jch/internal/escape"

	"go4.org/mem"
)

// A Writer is a jch.Sink that accumulates the compact JSON encoding of the
// events it receives. The zero value is ready for use.
//
// A Writer does not validate the sequence of events; the caller is
// responsible for delivering a well-formed document.
type Writer struct {
	buf []byte

	// For each open container, whether a value has been written to it.
	nonEmpty []bool
	afterKey bool
}

// Bytes returns the encoded output. The slice is valid until the next
// modification of w.
func (w *Writer) Bytes() []byte { return w.buf }

// Reset discards the contents of w, retaining its storage.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.nonEmpty = w.nonEmpty[:0]
	w.afterKey = false
}

// WriteTo writes the encoded output to iw, and implements io.WriterTo.
func (w *Writer) WriteTo(iw io.Writer) (int64, error) {
	return bytes.NewReader(w.buf).WriteTo(iw)
}

// sep writes a separator before a value or key, if one is needed.
func (w *Writer) sep() {
	if w.afterKey {
		w.afterKey = false
		return
	}
	if n := len(w.nonEmpty); n > 0 {
		if w.nonEmpty[n-1] {
			w.buf = append(w.buf, ',')
		}
		w.nonEmpty[n-1] = true
	}
}

func (w *Writer) raw(s string) bool {
	w.sep()
	w.buf = append(w.buf, s...)
	return true
}

func (w *Writer) open(c byte) bool {
	w.sep()
	w.buf = append(w.buf, c)
	w.nonEmpty = append(w.nonEmpty, false)
	return true
}

func (w *Writer) close(c byte) bool {
	w.buf = append(w.buf, c)
	w.nonEmpty = w.nonEmpty[:len(w.nonEmpty)-1]
	return true
}

func (w *Writer) Null() bool         { return w.raw("null") }
func (w *Writer) StartObject() bool  { return w.open('{') }
func (w *Writer) EndObject(int) bool { return w.close('}') }
func (w *Writer) StartArray() bool   { return w.open('[') }
func (w *Writer) EndArray(int) bool  { return w.close(']') }

func (w *Writer) Bool(b bool) bool {
	if b {
		return w.raw("true")
	}
	return w.raw("false")
}

func (w *Writer) Int(i int32) bool   { return w.Int64(int64(i)) }
func (w *Writer) Uint(u uint32) bool { return w.Uint64(uint64(u)) }

// Int64 writes i in decimal. The parser reports "-0" as a signed zero, so a
// signed zero is written as "-0".
func (w *Writer) Int64(i int64) bool {
	w.sep()
	if i == 0 {
		w.buf = append(w.buf, "-0"...)
	} else {
		w.buf = strconv.AppendInt(w.buf, i, 10)
	}
	return true
}

func (w *Writer) Uint64(u uint64) bool {
	w.sep()
	w.buf = strconv.AppendUint(w.buf, u, 10)
	return true
}

// Double writes the shortest representation of f that parses back to the
// same value. The output always has a fraction or an exponent, so that it
// is reported as a Double when parsed. Infinities and NaN have no JSON
// encoding, and are written as null.
func (w *Writer) Double(f float64) bool {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return w.Null()
	}
	w.sep()
	start := len(w.buf)
	w.buf = strconv.AppendFloat(w.buf, f, 'g', -1, 64)
	if bytes.IndexAny(w.buf[start:], ".eE") < 0 {
		w.buf = append(w.buf, ".0"...)
	}
	return true
}

func (w *Writer) RawNumber(str []byte, _ bool) bool {
	w.sep()
	w.buf = append(w.buf, str...)
	return true
}

func (w *Writer) String(str []byte, _ bool) bool {
	w.sep()
	w.buf = escape.AppendQuote(w.buf, mem.B(str))
	return true
}

func (w *Writer) Key(str []byte, _ bool) bool {
	w.sep()
	w.buf = escape.AppendQuote(w.buf, mem.B(str))
	w.buf = append(w.buf, ':')
	w.afterKey = true
	return true
}

var _ jch.Sink = (*Writer)(nil)
