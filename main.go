package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tsforge-labs/tsforge/internal/cli"
	"github.com/tsforge-labs/tsforge/internal/execx"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		// A failing external command already reported its own diagnostics
		// through the relayed streams; mirror its exit code.
		var exitErr *execx.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
