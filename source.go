// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jch

import (
	"bufio"
	"errors"
	"io"
)

// A Source is a pull-based byte source with one byte of lookahead.
//
// Peek reports the byte at the current position without consuming it, and
// Take reports the same byte and advances past it. Both report false once the
// input is exhausted, and Take does not advance further. Tell reports the
// number of bytes consumed by Take so far.
type Source interface {
	Peek() (byte, bool)
	Take() (byte, bool)
	Tell() int
}

// BytesSource is a Source that reads from a byte slice.
type BytesSource struct {
	src []byte
	pos int
}

// NewBytesSource constructs a Source that reads from src. The caller must not
// modify src while the source is in use.
func NewBytesSource(src []byte) *BytesSource { return &BytesSource{src: src} }

func (b *BytesSource) Peek() (byte, bool) {
	if b.pos < len(b.src) {
		return b.src[b.pos], true
	}
	return 0, false
}

func (b *BytesSource) Take() (byte, bool) {
	if b.pos < len(b.src) {
		c := b.src[b.pos]
		b.pos++
		return c, true
	}
	return 0, false
}

func (b *BytesSource) Tell() int { return b.pos }

// ReaderSource is a Source that reads from an io.Reader. Read errors are not
// visible to the parser; see Err.
type ReaderSource struct {
	r    io.ByteReader
	cur  byte
	has  bool // cur holds the byte at the current position
	done bool
	n    int
	err  error
}

// NewReaderSource constructs a Source that consumes input from r. If r does
// not implement io.ByteReader it is wrapped in a bufio.Reader.
func NewReaderSource(r io.Reader) *ReaderSource {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &ReaderSource{r: br}
}

func (s *ReaderSource) Peek() (byte, bool) {
	if !s.load() {
		return 0, false
	}
	return s.cur, true
}

func (s *ReaderSource) Take() (byte, bool) {
	if !s.load() {
		return 0, false
	}
	s.has = false
	s.n++
	return s.cur, true
}

func (s *ReaderSource) Tell() int { return s.n }

// Err reports the first error other than io.EOF returned by the underlying
// reader, or nil. A read error ends the input as if it were exhausted, so a
// caller of Parse must check Err even when Parse succeeds.
func (s *ReaderSource) Err() error { return s.err }

// load ensures the byte at the current position is available, and reports
// whether there is one.
func (s *ReaderSource) load() bool {
	if s.has {
		return true
	} else if s.done {
		return false
	}
	c, err := s.r.ReadByte()
	if err != nil {
		s.done = true
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		return false
	}
	s.cur, s.has = c, true
	return true
}
