// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jch

import "github.com/creachadair/jch/rapid"

// streamAdapter presents a Source as a rapid.Stream. The end of the source is
// reported to the reader as the byte 0.
type streamAdapter struct{ src Source }

func (a streamAdapter) Peek() byte {
	if c, ok := a.src.Peek(); ok {
		return c
	}
	return 0
}

func (a streamAdapter) Take() byte {
	if c, ok := a.src.Take(); ok {
		return c
	}
	return 0
}

func (a streamAdapter) Tell() int { return a.src.Tell() }

// AtEnd distinguishes a 0 byte in the source from its end.
func (a streamAdapter) AtEnd() bool { _, ok := a.src.Peek(); return !ok }

// The reader never writes to its input stream. A nil PutBegin tells it that
// writing is not supported; the remaining methods must not be reached.

func (streamAdapter) PutBegin() []byte  { return nil }
func (streamAdapter) Put(byte)          { panic("jch: Put called on a read-only source") }
func (streamAdapter) Flush()            { panic("jch: Flush called on a read-only source") }
func (streamAdapter) PutEnd([]byte) int { panic("jch: PutEnd called on a read-only source") }

// sinkAdapter presents a Sink as a rapid.Handler.
type sinkAdapter struct{ h Sink }

func (a sinkAdapter) Null() bool                           { return a.h.Null() }
func (a sinkAdapter) Bool(b bool) bool                     { return a.h.Bool(b) }
func (a sinkAdapter) Int(i int32) bool                     { return a.h.Int(i) }
func (a sinkAdapter) Uint(u uint32) bool                   { return a.h.Uint(u) }
func (a sinkAdapter) Int64(i int64) bool                   { return a.h.Int64(i) }
func (a sinkAdapter) Uint64(u uint64) bool                 { return a.h.Uint64(u) }
func (a sinkAdapter) Double(f float64) bool                { return a.h.Double(f) }
func (a sinkAdapter) RawNumber(str []byte, copy bool) bool { return a.h.RawNumber(str, copy) }
func (a sinkAdapter) String(str []byte, copy bool) bool    { return a.h.String(str, copy) }
func (a sinkAdapter) StartObject() bool                    { return a.h.StartObject() }
func (a sinkAdapter) Key(str []byte, copy bool) bool       { return a.h.Key(str, copy) }
func (a sinkAdapter) EndObject(memberCount int) bool       { return a.h.EndObject(memberCount) }
func (a sinkAdapter) StartArray() bool                     { return a.h.StartArray() }
func (a sinkAdapter) EndArray(elementCount int) bool       { return a.h.EndArray(elementCount) }

var (
	_ rapid.Stream  = streamAdapter{}
	_ rapid.Ender   = streamAdapter{}
	_ rapid.Handler = sinkAdapter{}
)
