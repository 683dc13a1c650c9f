// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package cmd

import (
	"bufio"
	"fmt"

	"github.com/creachadair/jch/ast"
	"github.com/creachadair/jch/ast/cursor"
	"github.com/creachadair/jch/jpath"
	"github.com/creachadair/jch/path"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <jsonpath> [file]",
	Short: "Print the values selected by a JSONPath expression",
	Long: `Parse the input into a tree and print the compact JSON encoding of each
value selected by the JSONPath expression, one per line. Unlike --path, the
selected values may be objects and arrays.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	m, err := jpath.Compile(args[0])
	if err != nil {
		return err
	}
	var b ast.Builder
	if err := parseInput(cmd, args[1:], &b); err != nil {
		return err
	}
	root, err := b.Result()
	if err != nil {
		return err
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	var n int
	cursor.Walk(root, func(p path.Path, v ast.Value) bool {
		if m.Match(p) {
			n++
			fmt.Fprintln(w, v.JSON())
		}
		return true
	})
	log.Debug().Str("expr", m.String()).Int("matches", n).Msg("get complete")
	return w.Flush()
}
