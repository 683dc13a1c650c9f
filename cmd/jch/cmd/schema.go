// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package cmd

import (
	"errors"
	"fmt"

	"github.com/creachadair/jch/schema"
	"github.com/creachadair/jch/shred"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [file]",
	Short: "Print the kinds and ranges of values at each path",
	Long: `Print the kinds and ranges of values found at each path of the input.
Array indices are erased, so all the elements of an array share a path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	filter, err := pathFilter()
	if err != nil {
		return err
	}
	var c schema.Collector
	if err := parseInput(cmd, args, c.Sink().Filter(filter)); err != nil {
		return err
	}
	return c.Report(cmd.OutOrStdout())
}

var shredFlags struct {
	dir string
	db  string
}

var shredCmd = &cobra.Command{
	Use:   "shred (--dir D | --db F) [file]",
	Short: "Write the values at each path to a separate column",
	Long: `Write each scalar value of the input to a column named for its path,
with array indices removed. With --dir, each column is a file of JSON lines
in the given directory. With --db, each column is a bucket of the given
bbolt database.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShred,
}

func init() {
	shredCmd.Flags().StringVar(&shredFlags.dir, "dir", "", "output directory (must exist)")
	shredCmd.Flags().StringVar(&shredFlags.db, "db", "", "output database file")
	shredCmd.MarkFlagsMutuallyExclusive("dir", "db")
	shredCmd.MarkFlagsOneRequired("dir", "db")
}

func runShred(cmd *cobra.Command, args []string) (err error) {
	filter, err := pathFilter()
	if err != nil {
		return err
	}

	var st shred.Store
	if shredFlags.dir != "" {
		st, err = shred.NewDirStore(shredFlags.dir)
	} else {
		st, err = shred.OpenBolt(shredFlags.db)
	}
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	s := shred.New(st)
	perr := parseInput(cmd, args, s.Sink().Filter(filter))
	if serr := s.Err(); serr != nil {
		return fmt.Errorf("writing columns: %w", serr)
	} else if perr != nil {
		return perr
	}
	log.Info().Int64("values", s.Count()).Str("input", inputName(args)).Msg("shredded input")
	return nil
}
