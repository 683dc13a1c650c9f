// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package rapid

// A Handler receives events from a Reader. Each method reports whether
// parsing should continue: returning false stops the parse, and the Reader
// reports ErrTermination.
//
// The byte slices passed to RawNumber, String, and Key are only valid for the
// duration of the call. When copy is true the slice refers to storage the
// Reader will overwrite, and the handler must copy any data it retains.
type Handler interface {
	Null() bool
	Bool(b bool) bool
	Int(i int32) bool
	Uint(u uint32) bool
	Int64(i int64) bool
	Uint64(u uint64) bool
	Double(f float64) bool
	RawNumber(str []byte, copy bool) bool
	String(str []byte, copy bool) bool
	StartObject() bool
	Key(str []byte, copy bool) bool
	EndObject(memberCount int) bool
	StartArray() bool
	EndArray(elementCount int) bool
}
