// Package version holds build metadata stamped in by the mage Build target.
package version

import "fmt"

// Set through -ldflags -X at build time.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String formats the build metadata for the version command.
func String() string {
	return fmt.Sprintf("tally %s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
