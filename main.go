// Command mynotion is a terminal productivity dashboard with tasks, habits,
// links, and notes stored as plain JSON files.
package main

import (
	"fmt"
	"os"

	"mynotion/cmd"
)

// Build metadata injected by goreleaser or makefile
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

func init() {
	cmd.Version = buildVersion
	cmd.Commit = buildCommit
	cmd.Date = buildDate
}

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
