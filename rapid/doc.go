// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package rapid implements an event-driven JSON reader over a byte stream.
//
// A Reader pulls bytes one at a time from a Stream and pushes one event per
// token to a Handler:
//
//	var r rapid.Reader
//	if err := r.Parse(rapid.NewStringStream(input), handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// # Streams
//
// A Stream reports the byte at its current position (Peek), consumes it
// (Take), and reports how many bytes it has consumed (Tell). The value 0
// marks the end of the input. The package provides a StringStream over a byte
// slice and a FileReadStream that reads through a fixed buffer.
//
// # Handlers
//
// The methods of a Handler correspond to JSON tokens:
//
//	JSON type  | Methods                                 | Description
//	---------- | --------------------------------------- | -----------------------
//	object     | StartObject, Key, EndObject             | { "key": ... }
//	array      | StartArray, EndArray                    | [ ... ]
//	number     | Int, Uint, Int64, Uint64, Double        | converted numbers
//	number     | RawNumber                               | with NumbersAsStrings
//	other      | String, Bool, Null                      | "...", true, false, null
//
// EndObject and EndArray report the number of members or elements of the
// value they close. Every method returns a bool; false stops the parse.
//
// # Errors
//
// Parse reports failures as a *ParseError carrying an ErrorCode and the
// stream offset. A stop requested by the handler has code ErrTermination,
// which is distinct from every code describing malformed input.
package rapid
