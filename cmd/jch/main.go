// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program jch is a command-line tool for inspecting JSON documents with an
// event-driven parser.
package main

import (
	"os"

	"github.com/creachadair/jch/cmd/jch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
