// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jch

// A Sink receives one call per token of a JSON document, in document order.
// Each method reports whether parsing should continue; returning false stops
// the parse, and the entry point reports an error for which IsAbort is true.
// Stopping is a request by the consumer, not a fault in the input.
//
// EndObject and EndArray report the number of direct members or elements of
// the value they close.
//
// The slices passed to RawNumber, String, and Key are only valid during the
// call. A sink that needs the data afterward must copy it. The copy flag is a
// hint from the parser that the storage will be reused; a sink that always
// copies may ignore it.
type Sink interface {
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
