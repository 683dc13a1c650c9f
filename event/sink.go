// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package event

import "github.com/creachadair/jch"

// Func is a jch.Sink that converts each call into an Event and passes it to
// the function. The result of the function is returned to the parser.
type Func func(Event) bool

func (f Func) Null() bool            { return f(Event{Kind: Null}) }
func (f Func) Bool(b bool) bool      { return f(Event{Kind: Bool, Bool: b}) }
func (f Func) Int(i int32) bool      { return f(Event{Kind: Int, Int: int64(i)}) }
func (f Func) Uint(u uint32) bool    { return f(Event{Kind: Uint, Uint: uint64(u)}) }
func (f Func) Int64(i int64) bool    { return f(Event{Kind: Int64, Int: i}) }
func (f Func) Uint64(u uint64) bool  { return f(Event{Kind: Uint64, Uint: u}) }
func (f Func) Double(v float64) bool { return f(Event{Kind: Double, Float: v}) }
func (f Func) StartObject() bool     { return f(Event{Kind: StartObject}) }
func (f Func) EndObject(n int) bool  { return f(Event{Kind: EndObject, Count: n}) }
func (f Func) StartArray() bool      { return f(Event{Kind: StartArray}) }
func (f Func) EndArray(n int) bool   { return f(Event{Kind: EndArray, Count: n}) }

func (f Func) RawNumber(str []byte, _ bool) bool {
	return f(Event{Kind: RawNumber, Text: string(str)})
}

func (f Func) String(str []byte, _ bool) bool {
	return f(Event{Kind: String, Text: string(str)})
}

func (f Func) Key(str []byte, _ bool) bool {
	return f(Event{Kind: Key, Text: string(str)})
}

// Recorder is a jch.Sink that records every event it receives.
// The zero value is ready for use.
type Recorder struct {
	Events []Event

	// If positive, the recorder declines to continue after recording this
	// many events.
	StopAfter int
}

// Sink returns a jch.Sink that appends to r.
func (r *Recorder) Sink() jch.Sink {
	return Func(func(e Event) bool {
		r.Events = append(r.Events, e)
		return r.StopAfter <= 0 || len(r.Events) < r.StopAfter
	})
}

// Strings returns the string representations of the recorded events.
func (r *Recorder) Strings() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.String()
	}
	return out
}

var _ jch.Sink = Func(nil)
