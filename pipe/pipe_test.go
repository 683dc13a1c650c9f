// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package pipe_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/jch"
	"github.com/creachadair/jch/path"
	"github.com/creachadair/jch/pipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parser returns a parse function for Run that reads input.
func parser(input string) func(jch.Sink) error {
	return func(h jch.Sink) error {
		return jch.Parse(h, jch.NewBytesSource([]byte(input)))
	}
}

// collect runs input through a pipe of the given size and returns the events
// received, in order.
func collect(t *testing.T, size int, input string) ([]pipe.Event, error) {
	t.Helper()
	var got []pipe.Event
	err := pipe.Run(context.Background(), pipe.New(size), parser(input), func(e pipe.Event) error {
		got = append(got, e)
		return nil
	})
	return got, err
}

func eventStrings(es []pipe.Event) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.String()
	}
	return out
}

func TestRun(t *testing.T) {
	got, err := collect(t, 0, `{"a": [1, "x", {"b": -2.5}], "c": null}`)
	require.NoError(t, err)

	// The events are formatted after the parse is complete, so any path or
	// text shared with the parser would show up here.
	assert.Equal(t, []string{
		"a/0 => 1",
		`a/1 => "x"`,
		"a/2/b => -2.5",
		"c => null",
		"finished",
	}, eventStrings(got))
}

func TestRunSmallBuffer(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("[")
	for i := range 100 {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `"v%d"`, i)
	}
	sb.WriteString("]")

	got, err := collect(t, 1, sb.String())
	require.NoError(t, err)
	require.Len(t, got, 101)
	for i, e := range got[:100] {
		assert.Equal(t, pipe.Value, e.Kind)
		assert.Equal(t, fmt.Sprint(i), e.Path.String())
		assert.Equal(t, fmt.Sprintf("v%d", i), string(e.Leaf.Text))
	}
	assert.Equal(t, pipe.Finished, got[100].Kind)
}

func TestRunSyntaxError(t *testing.T) {
	got, err := collect(t, 0, `{"a": [1, 2`)
	require.Error(t, err)
	assert.True(t, jch.IsSyntaxError(err))

	require.Len(t, got, 3)
	last := got[2]
	assert.Equal(t, pipe.Error, last.Kind)
	assert.Equal(t, "a/1", last.Path.String())
	assert.ErrorIs(t, last.Err, err)
	assert.Contains(t, last.String(), `at path "a/1"`)
}

func TestRunConsumerStop(t *testing.T) {
	errStop := errors.New("stop")
	var perr error
	var n int
	err := pipe.Run(context.Background(), pipe.New(1), func(h jch.Sink) error {
		perr = jch.Parse(h, jch.NewBytesSource([]byte(`[1,2,3,4,5,6,7,8,9,10]`)))
		return perr
	}, func(e pipe.Event) error {
		n++
		return errStop
	})
	assert.ErrorIs(t, err, errStop)
	assert.True(t, jch.IsAbort(perr), "parse error: %v", perr)
	assert.Equal(t, 1, n)
}

func TestRunCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var perr error
	err := pipe.Run(ctx, pipe.New(0), func(h jch.Sink) error {
		perr = jch.Parse(h, jch.NewBytesSource([]byte(`[1, 2, 3]`)))
		return perr
	}, func(pipe.Event) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, jch.IsAbort(perr), "parse error: %v", perr)
}

func TestFilter(t *testing.T) {
	p := pipe.New(0).Filter(func(p path.Path) bool {
		return len(p) > 0 && p[len(p)-1].Key() == "b"
	})
	var got []string
	err := pipe.Run(context.Background(), p, parser(`[{"a": 1, "b": 2}, {"b": true}]`), func(e pipe.Event) error {
		got = append(got, e.String())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"0/b => 2", "1/b => true", "finished"}, got)
}

func TestManual(t *testing.T) {
	p := pipe.New(2)
	done := make(chan []string)
	go func() {
		var got []string
		for e := range p.Events() {
			got = append(got, e.String())
		}
		done <- got
	}()

	err := jch.Parse(p.Sink(), jch.NewBytesSource([]byte(`{"k": ["a", "b", "c"]}`)))
	p.Close(err)
	require.NoError(t, err)
	assert.Equal(t, []string{`k/0 => "a"`, `k/1 => "b"`, `k/2 => "c"`, "finished"}, <-done)
}

func TestStop(t *testing.T) {
	p := pipe.New(0)
	p.Stop()
	p.Stop() // repeated calls are harmless

	err := jch.Parse(p.Sink(), jch.NewBytesSource([]byte(`[true]`)))
	assert.True(t, jch.IsAbort(err), "parse error: %v", err)
	p.Close(err)

	_, ok := <-p.Events()
	assert.False(t, ok, "events channel should be closed and empty")
}

func TestKind(t *testing.T) {
	assert.Equal(t, "value", pipe.Value.String())
	assert.Equal(t, "error", pipe.Error.String())
	assert.Equal(t, "finished", pipe.Finished.String())
	assert.Equal(t, "invalid", pipe.Kind(9).String())
}
