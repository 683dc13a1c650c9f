// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package event defines a value representation of parser events, for
// recording, printing, and replaying the output of a parse.
package event

import (
	"fmt"
	"strconv"

	"github.com/creachadair/jch"
)

// Kind identifies the Sink method an Event corresponds to.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota
	Null
	Bool
	Int
	Uint
	Int64
	Uint64
	Double
	RawNumber
	String
	StartObject
	Key
	EndObject
	StartArray
	EndArray
)

var kindStr = [...]string{
	Invalid:     "Invalid",
	Null:        "Null",
	Bool:        "Bool",
	Int:         "Int",
	Uint:        "Uint",
	Int64:       "Int64",
	Uint64:      "Uint64",
	Double:      "Double",
	RawNumber:   "RawNumber",
	String:      "String",
	StartObject: "StartObject",
	Key:         "Key",
	EndObject:   "EndObject",
	StartArray:  "StartArray",
	EndArray:    "EndArray",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[k]
}

// An Event is a single parser event. Only the fields relevant to its Kind
// are populated.
type Event struct {
	Kind  Kind
	Bool  bool    // Bool
	Int   int64   // Int, Int64
	Uint  uint64  // Uint, Uint64
	Float float64 // Double
	Text  string  // RawNumber, String, Key
	Count int     // EndObject, EndArray
}

// String renders e in a compact human-readable form, for example
// `Key "a"`, `Uint 1`, or `EndArray 2`.
func (e Event) String() string {
	switch e.Kind {
	case Null, StartObject, StartArray:
		return e.Kind.String()
	case Bool:
		return fmt.Sprintf("Bool %v", e.Bool)
	case Int, Int64:
		return e.Kind.String() + " " + strconv.FormatInt(e.Int, 10)
	case Uint, Uint64:
		return e.Kind.String() + " " + strconv.FormatUint(e.Uint, 10)
	case Double:
		return "Double " + strconv.FormatFloat(e.Float, 'g', -1, 64)
	case RawNumber:
		return "RawNumber " + e.Text
	case String, Key:
		return e.Kind.String() + " " + strconv.Quote(e.Text)
	case EndObject, EndArray:
		return e.Kind.String() + " " + strconv.Itoa(e.Count)
	default:
		return e.Kind.String()
	}
}

// Send delivers e to the corresponding method of s and returns its result.
func (e Event) Send(s jch.Sink) bool {
	switch e.Kind {
	case Null:
		return s.Null()
	case Bool:
		return s.Bool(e.Bool)
	case Int:
		return s.Int(int32(e.Int))
	case Uint:
		return s.Uint(uint32(e.Uint))
	case Int64:
		return s.Int64(e.Int)
	case Uint64:
		return s.Uint64(e.Uint)
	case Double:
		return s.Double(e.Float)
	case RawNumber:
		return s.RawNumber([]byte(e.Text), false)
	case String:
		return s.String([]byte(e.Text), false)
	case StartObject:
		return s.StartObject()
	case Key:
		return s.Key([]byte(e.Text), false)
	case EndObject:
		return s.EndObject(e.Count)
	case StartArray:
		return s.StartArray()
	case EndArray:
		return s.EndArray(e.Count)
	default:
		panic(fmt.Sprintf("event: invalid kind %v", e.Kind))
	}
}

// Replay delivers each of evs to s in order, stopping early if s returns
// false. It returns the number of events delivered.
func Replay(s jch.Sink, evs []Event) int {
	for i, e := range evs {
		if !e.Send(s) {
			return i + 1
		}
	}
	return len(evs)
}
