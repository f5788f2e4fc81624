package cmd

import "fmt"

// Build metadata, set by the release pipeline.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// versionString renders the full build identity shown by --version.
func versionString() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
