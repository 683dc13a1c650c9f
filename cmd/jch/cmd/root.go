// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package cmd implements the subcommands of the jch tool.
package cmd

import (
	"io"
	"os"

	"github.com/creachadair/jch"
	"github.com/creachadair/jch/jpath"
	"github.com/creachadair/jch/path"
	"github.com/creachadair/jch/rapid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"
)

// settings holds the values of the flags shared by several commands.
type settings struct {
	path           string
	jwcc           bool
	rawNumbers     bool
	comments       bool
	trailingCommas bool
	maxDepth       int
	logLevel       string
	pretty         bool
}

var flags settings

var rootCmd = &cobra.Command{
	Use:   "jch",
	Short: "Event-driven JSON inspection",
	Long: `Parse JSON documents in a single pass and report their events, paths,
schema, or columns. Each command reads the named file, or standard input if
no file is given or the name is "-".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		setupLogging(cmd.ErrOrStderr(), flags.logLevel, flags.pretty)
	},
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("jch failed")
		return err
	}
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flags.jwcc, "jwcc", false, "accept JSON with commas and comments (HuJSON) input")
	pf.BoolVar(&flags.rawNumbers, "raw-numbers", false, "report numbers as unconverted text")
	pf.BoolVar(&flags.comments, "comments", false, "allow /* */ and // comments")
	pf.BoolVar(&flags.trailingCommas, "trailing-commas", false, "allow trailing commas in objects and arrays")
	pf.IntVar(&flags.maxDepth, "max-depth", rapid.DefaultMaxDepth, "maximum nesting depth of objects and arrays (<= 0 for the default)")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	pf.BoolVar(&flags.pretty, "pretty", false, "write human-readable logs")

	for _, c := range []*cobra.Command{pathsCmd, schemaCmd, shredCmd} {
		c.Flags().StringVar(&flags.path, "path", "", "JSONPath expression selecting the values to report")
	}

	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(shredCmd)
	rootCmd.AddCommand(watchCmd)
}

func setupLogging(w io.Writer, level string, pretty bool) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
	} else {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}
}

// parseOptions returns the parser options selected by the flags.
func parseOptions() []jch.Option {
	var f rapid.Flags
	if flags.rawNumbers {
		f |= rapid.NumbersAsStrings
	}
	if flags.comments {
		f |= rapid.Comments
	}
	if flags.trailingCommas {
		f |= rapid.TrailingCommas
	}
	return []jch.Option{jch.WithFlags(f), jch.WithMaxDepth(flags.maxDepth)}
}

// pathFilter returns a predicate selecting leaves by the --path flag, or nil
// if the flag is not set.
func pathFilter() (func(path.Path) bool, error) {
	if flags.path == "" {
		return nil, nil
	}
	m, err := jpath.Compile(flags.path)
	if err != nil {
		return nil, err
	}
	return m.Selects, nil
}

// inputName returns the input file named by args, or "-" for stdin.
func inputName(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// parseInput parses the document named by args into h. A named file is read
// with jch.ParseFile; standard input is read through a ReaderSource. With
// --jwcc the input is read fully and standardized before parsing.
func parseInput(cmd *cobra.Command, args []string, h jch.Sink) error {
	name := inputName(args)
	opts := parseOptions()
	logger := log.With().Str("input", name).Logger()

	if flags.jwcc {
		var data []byte
		var err error
		if name == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return err
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			return err
		}
		logger.Debug().Int("bytes", len(std)).Msg("standardized HuJSON input")
		return jch.Parse(h, jch.NewBytesSource(std), opts...)
	}

	if name == "-" {
		src := jch.NewReaderSource(cmd.InOrStdin())
		err := jch.Parse(h, src, opts...)
		if rerr := src.Err(); rerr != nil {
			return rerr
		}
		logger.Debug().Int("bytes", src.Tell()).Msg("parsed input")
		return err
	}
	logger.Debug().Msg("parsing file")
	return jch.ParseFile(name, h, opts...)
}
