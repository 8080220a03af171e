package main

import (
	"fmt"
	"os"

	"github.com/dotweave/dot/internal/domain"
)

// Version information (set via ldflags at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := NewRootCommand(version, commit, date)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", domain.UserFacingError(err))
		return 1
	}

	return exitCode
}
