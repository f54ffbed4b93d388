// Package main provides the entry point for the integrityforge CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/integrityforge/internal/cli"
	"github.com/mrz1836/integrityforge/internal/constants"
	"github.com/mrz1836/integrityforge/internal/signal"
)

// Build information set via ldflags.
var (
	version = "" //nolint:gochecknoglobals // set by -ldflags
	commit  = "" //nolint:gochecknoglobals // set by -ldflags
	date    = "" //nolint:gochecknoglobals // set by -ldflags
)

func main() {
	os.Exit(run())
}

// run executes the CLI and maps the outcome to a process exit code. It is
// separate from main so deferred cleanup runs before os.Exit.
func run() int {
	h := signal.NewHandler(context.Background())
	defer h.Stop()
	defer cli.CloseLogFile()

	err := cli.Execute(h.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	select {
	case <-h.Interrupted():
		// A cancelled run is an operational error, never a silent pass.
		return constants.ExitErrored
	default:
	}

	return cli.ExitCodeForError(err)
}
