// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package rapid

import (
	"errors"
	"io"
)

// A Stream is the character stream consumed by a Reader.
//
// Peek reports the current byte without consuming it, and Take reports the
// current byte and advances past it. At the end of the input both report 0,
// and Take does not advance further. Tell reports the number of bytes
// consumed so far.
//
// The write methods are part of the concept but are never called while
// reading. A read-only stream returns nil from PutBegin, and may panic from
// the other three.
type Stream interface {
	Peek() byte
	Take() byte
	Tell() int

	PutBegin() []byte
	Put(byte)
	Flush()
	PutEnd([]byte) int
}

// An Ender is a Stream that can tell a 0 byte in its input apart from the end
// of the input. A Reader uses it to reject a 0 byte after the root value;
// for other streams a 0 byte ends the document.
type Ender interface {
	AtEnd() bool
}

// readOnly provides the write methods of the Stream concept for streams that
// do not support writing.
type readOnly struct{}

func (readOnly) PutBegin() []byte  { return nil }
func (readOnly) Put(byte)          { panic("rapid: Put called on a read-only stream") }
func (readOnly) Flush()            { panic("rapid: Flush called on a read-only stream") }
func (readOnly) PutEnd([]byte) int { panic("rapid: PutEnd called on a read-only stream") }

// StringStream is a read-only Stream over an in-memory byte slice.
type StringStream struct {
	readOnly

	src []byte
	pos int
}

// NewStringStream constructs a Stream that reads from src.
func NewStringStream(src []byte) *StringStream { return &StringStream{src: src} }

func (s *StringStream) Peek() byte {
	if s.pos < len(s.src) {
		return s.src[s.pos]
	}
	return 0
}

func (s *StringStream) Take() byte {
	if s.pos < len(s.src) {
		c := s.src[s.pos]
		s.pos++
		return c
	}
	return 0
}

func (s *StringStream) Tell() int   { return s.pos }
func (s *StringStream) AtEnd() bool { return s.pos >= len(s.src) }

// FileBufferSize is the size of the read buffer used for file parsing.
const FileBufferSize = 64 << 10

// minFileBuffer is the smallest buffer NewFileReadStream accepts.
const minFileBuffer = 4

// FileReadStream is a read-only Stream that reads from an underlying reader,
// typically an *os.File, through a caller-provided buffer. The buffer is
// refilled as its contents are consumed.
type FileReadStream struct {
	readOnly

	r    io.Reader
	buf  []byte
	cur  int // offset of the current byte in buf
	last int // number of valid bytes in buf
	base int // number of bytes consumed before buf[0]
	eof  bool
	err  error
}

// NewFileReadStream constructs a FileReadStream that reads from r using buf
// as its buffer. It panics if buf has fewer than 4 bytes. The stream does not
// take ownership of r; the caller remains responsible for closing it.
func NewFileReadStream(r io.Reader, buf []byte) *FileReadStream {
	if len(buf) < minFileBuffer {
		panic("rapid: file buffer is too small")
	}
	s := &FileReadStream{r: r, buf: buf}
	s.fill()
	return s
}

func (s *FileReadStream) Peek() byte {
	if s.cur < s.last {
		return s.buf[s.cur]
	}
	return 0
}

func (s *FileReadStream) Take() byte {
	if s.cur >= s.last {
		return 0
	}
	c := s.buf[s.cur]
	s.cur++
	if s.cur == s.last {
		s.fill()
	}
	return c
}

func (s *FileReadStream) Tell() int { return s.base + s.cur }

// AtEnd reports whether the input is exhausted, or reading it has failed.
func (s *FileReadStream) AtEnd() bool { return s.cur >= s.last }

// Err reports the first error other than io.EOF returned by the underlying
// reader, or nil. A read error ends the stream as if the input were exhausted.
func (s *FileReadStream) Err() error { return s.err }

// fill replaces the contents of the buffer with the next available input.
// Precondition: all bytes of the buffer have been consumed.
func (s *FileReadStream) fill() {
	if s.eof {
		return
	}
	s.base += s.last
	s.cur, s.last = 0, 0
	for s.last == 0 {
		n, err := s.r.Read(s.buf)
		s.last = n
		if err != nil {
			s.eof = true
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			return
		}
	}
}

var (
	_ Ender = (*StringStream)(nil)
	_ Ender = (*FileReadStream)(nil)
)
