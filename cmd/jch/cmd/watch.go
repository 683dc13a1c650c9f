// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Check the file and print its schema whenever it changes",
	Long: `Check the file and print its schema, then do so again each time the
file is written, until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

// debounceInterval is how long the file must be quiet before it is reported
// again. Editors often write a file several times per save.
const debounceInterval = 50 * time.Millisecond

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchFile(ctx, cmd, args[0])
}

// watchFile reports on name, then again each time it changes, until ctx
// ends. The directory is watched rather than the file, so that editors that
// replace the file by renaming are followed.
func watchFile(ctx context.Context, cmd *cobra.Command, name string) error {
	abs, err := filepath.Abs(name)
	if err != nil {
		return err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	report := func() {
		fmt.Fprintf(cmd.OutOrStdout(), "== %s\n", name)
		if err := runCheck(cmd, []string{name}); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", err)
			return
		}
		if err := runSchema(cmd, []string{name}); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", err)
		}
	}
	report()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-fire:
			fire = nil
			report()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Name != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			log.Debug().Str("file", name).Str("op", ev.Op.String()).Msg("file changed")
			if timer == nil {
				timer = time.NewTimer(debounceInterval)
			} else {
				timer.Reset(debounceInterval)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("file", name).Msg("watch error")
		}
	}
}
