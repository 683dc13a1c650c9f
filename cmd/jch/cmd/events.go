// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"

	"github.com/creachadair/jch"
	"github.com/creachadair/jch/event"
	"github.com/creachadair/jch/path"
	"github.com/creachadair/jch/pipe"
	"github.com/creachadair/jch/rapid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events [file]",
	Short: "Print one line per parser event",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEvents,
}

func runEvents(cmd *cobra.Command, args []string) error {
	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()

	var werr error
	sink := event.Func(func(e event.Event) bool {
		_, werr = fmt.Fprintln(w, e)
		return werr == nil
	})
	err := parseInput(cmd, args, sink)
	if werr != nil {
		return werr
	}
	return err
}

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check that the input is a well-formed JSON document",
	Long: `Check that the input is a well-formed JSON document.
On failure, the error code and byte offset are reported and the exit
status is 1.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

// discard is a Sink that accepts every event.
type discard struct{}

func (discard) Null() bool                  { return true }
func (discard) Bool(bool) bool              { return true }
func (discard) Int(int32) bool              { return true }
func (discard) Uint(uint32) bool            { return true }
func (discard) Int64(int64) bool            { return true }
func (discard) Uint64(uint64) bool          { return true }
func (discard) Double(float64) bool         { return true }
func (discard) RawNumber([]byte, bool) bool { return true }
func (discard) String([]byte, bool) bool    { return true }
func (discard) StartObject() bool           { return true }
func (discard) Key([]byte, bool) bool       { return true }
func (discard) EndObject(int) bool          { return true }
func (discard) StartArray() bool            { return true }
func (discard) EndArray(int) bool           { return true }

var _ jch.Sink = discard{}

func runCheck(cmd *cobra.Command, args []string) error {
	err := parseInput(cmd, args, discard{})
	var perr *rapid.ParseError
	if errors.As(err, &perr) {
		log.Debug().Str("code", perr.Code.String()).Int("offset", perr.Offset).Msg("invalid input")
		return fmt.Errorf("%s: invalid JSON: %w", inputName(args), err)
	} else if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", inputName(args))
	return nil
}

var pathsFlags struct {
	jq    bool
	async bool
}

var pathsCmd = &cobra.Command{
	Use:   "paths [file]",
	Short: "Print the path and value of each scalar in the input",
	Long: `Print the path and value of each scalar in the input, one per line.
With --async, values are handed from the parser to a separate writer
goroutine over a bounded channel.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPaths,
}

func init() {
	pathsCmd.Flags().BoolVar(&pathsFlags.jq, "jq", false, "print paths in jq array notation")
	pathsCmd.Flags().BoolVar(&pathsFlags.async, "async", false, "write output on a separate goroutine")
}

// appendPathLine appends the output line for a leaf at p to buf.
func appendPathLine(buf []byte, p path.Path, v path.Leaf) []byte {
	if pathsFlags.jq {
		buf = append(buf, p.JQ()...)
	} else {
		buf = strconv.AppendQuote(buf, p.String())
	}
	buf = append(buf, '\t')
	return append(v.AppendJSON(buf), '\n')
}

func runPaths(cmd *cobra.Command, args []string) error {
	filter, err := pathFilter()
	if err != nil {
		return err
	}
	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()

	var buf []byte
	if pathsFlags.async {
		p := pipe.New(pipe.DefaultSize).Filter(filter)
		parse := func(h jch.Sink) error { return parseInput(cmd, args, h) }
		return pipe.Run(cmd.Context(), p, parse, func(e pipe.Event) error {
			if e.Kind == pipe.Error {
				log.Debug().Str("path", e.Path.String()).Err(e.Err).Msg("parse failed")
			}
			if e.Kind != pipe.Value {
				return nil
			}
			buf = appendPathLine(buf[:0], e.Path, e.Leaf)
			_, err := w.Write(buf)
			return err
		})
	}

	var werr error
	t := path.NewTracker(func(p path.Path, v path.Leaf) bool {
		buf = appendPathLine(buf[:0], p, v)
		_, werr = w.Write(buf)
		return werr == nil
	}).Filter(filter)
	perr := parseInput(cmd, args, t)
	if werr != nil {
		return werr
	}
	return perr
}
