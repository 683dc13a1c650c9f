// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package pipe decouples parsing from the handling of parsed values.
//
// A Pipe is a jch.Sink that tracks the path of each scalar value in the
// input, and sends the path and value as an Event over a bounded channel.
// A consumer running in another goroutine receives the events. The parser
// blocks while the channel is full. When the consumer stops, the parser
// ends with a termination error at its next value.
//
// The Run function handles the common case of one producer and one consumer.
package pipe

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/creachadair/jch"
	"github.com/creachadair/jch/path"
	"golang.org/x/sync/errgroup"
)

// DefaultSize is the channel capacity used by New when size <= 0.
const DefaultSize = 8192

// Kind identifies the type of an Event.
type Kind byte

// Constants defining the valid Kind values.
const (
	Value    Kind = iota // a scalar value and its path
	Error                // parsing failed
	Finished             // parsing succeeded
)

var kindStr = [...]string{Value: "value", Error: "error", Finished: "finished"}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid"
	}
	return kindStr[k]
}

// An Event is a message sent from the parser to the consumer of a Pipe.
// The Path and Leaf of an event are owned by the receiver.
type Event struct {
	Kind Kind
	Path path.Path // for Value and Error
	Leaf path.Leaf // for Value
	Err  error     // for Error
}

func (e Event) String() string {
	switch e.Kind {
	case Value:
		return e.Path.String() + " => " + string(e.Leaf.AppendJSON(nil))
	case Error:
		return fmt.Sprintf("error: %v at path %q", e.Err, e.Path.String())
	default:
		return e.Kind.String()
	}
}

// A Pipe sends the scalar values of a document over a channel. Use Sink to
// obtain the handler to pass to the parser, and Events to receive.
//
// After parsing, the producer must call Close exactly once. Stop may be
// called from any goroutine.
type Pipe struct {
	tr   *path.Tracker
	ch   chan Event
	stop chan struct{}
	once sync.Once
}

// New constructs a Pipe whose channel has capacity size. If size <= 0,
// DefaultSize is used.
func New(size int) *Pipe {
	if size <= 0 {
		size = DefaultSize
	}
	p := &Pipe{
		ch:   make(chan Event, size),
		stop: make(chan struct{}),
	}
	p.tr = path.NewTracker(p.send)
	return p
}

// Filter sets a predicate selecting which values are sent. Values whose
// paths are not selected are skipped. A nil filter selects every value.
func (p *Pipe) Filter(f func(path.Path) bool) *Pipe { p.tr.Filter(f); return p }

// Sink returns the handler to pass to the parser.
func (p *Pipe) Sink() jch.Sink { return p.tr }

// Events returns the channel on which events are delivered. The channel is
// closed by Close.
func (p *Pipe) Events() <-chan Event { return p.ch }

// Stop reports that the consumer will receive no more events. Any blocked
// or subsequent send by the producer fails. Stop is safe to call more than
// once.
func (p *Pipe) Stop() { p.once.Do(func() { close(p.stop) }) }

// Close sends a final event and closes the events channel. If err == nil
// the final event is Finished; otherwise it is an Error event carrying err
// and the path at which parsing stopped. The final event is dropped if the
// consumer has stopped.
func (p *Pipe) Close(err error) {
	if err == nil {
		p.put(Event{Kind: Finished})
	} else {
		p.put(Event{Kind: Error, Path: p.tr.Path().Clone(), Err: err})
	}
	close(p.ch)
}

func (p *Pipe) send(at path.Path, v path.Leaf) bool {
	v.Text = bytes.Clone(v.Text)
	return p.put(Event{Kind: Value, Path: at.Clone(), Leaf: v})
}

func (p *Pipe) put(e Event) bool {
	select {
	case <-p.stop:
		return false
	default:
	}
	select {
	case p.ch <- e:
		return true
	case <-p.stop:
		return false
	}
}

// Run calls parse with the sink of p on the calling goroutine, and calls
// consume with each event of p in a separate goroutine, including the final
// Finished or Error event.
//
// If consume reports an error, or ctx ends, the consumer stops and the parse
// is terminated. Run returns the error from consume if there is one, or
// otherwise the error from parse. If the parse was terminated because ctx
// ended, Run returns the error from ctx.
func Run(ctx context.Context, p *Pipe, parse func(jch.Sink) error, consume func(Event) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer p.Stop()
		for e := range p.Events() {
			if err := consume(e); err != nil {
				return err
			}
		}
		return nil
	})
	release := context.AfterFunc(gctx, p.Stop)
	defer release()
	if ctx.Err() != nil {
		p.Stop()
	}

	perr := parse(p.Sink())
	p.Close(perr)
	if err := g.Wait(); err != nil {
		return err
	}
	if jch.IsAbort(perr) && ctx.Err() != nil {
		return ctx.Err()
	}
	return perr
}
