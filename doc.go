// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jch implements single-pass, event-driven JSON parsing over
// caller-supplied byte sources and event sinks.
//
// # Sources
//
// A Source yields the input one byte at a time, with one byte of lookahead.
// Peek and Take report false at the end of the input, and Tell reports how
// many bytes have been consumed:
//
//	src := jch.NewReaderSource(os.Stdin)
//
// The package provides NewBytesSource and NewReaderSource; callers may supply
// their own implementations.
//
// # Sinks
//
// A Sink receives one call per token of the document. The methods of a sink
// correspond to the syntax of JSON values:
//
//	JSON type  | Methods                          | Description
//	---------- | -------------------------------- | -----------------------------
//	object     | StartObject, Key, EndObject      | { "key": value, ... }
//	array      | StartArray, EndArray             | [ value, ... ]
//	number     | Int, Uint, Int64, Uint64, Double | 1, -2, 3.5e6
//	number     | RawNumber                        | with rapid.NumbersAsStrings
//	value      | String, Bool, Null               | "text", true, false, null
//
// Each method returns true to continue or false to stop parsing. The byte
// slices passed to String, Key, and RawNumber are only valid for the duration
// of the call; the sink must copy any data it needs to retain.
//
// # Parsing
//
// Parse reads a document from a Source:
//
//	if err := jch.Parse(sink, src); jch.IsAbort(err) {
//	   log.Print("Sink stopped the parse")
//	} else if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// ParseFile reads a document from a named file through an internal buffer,
// which is faster than reading the same file through a Source:
//
//	if err := jch.ParseFile("input.json", sink); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// Parse errors have concrete type *rapid.ParseError and report an error code
// and the byte offset at which parsing stopped. ParseFile reports a failure
// to open or read its input as a *FileError, never as a parse error.
package jch
