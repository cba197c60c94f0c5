// Package version holds the release metadata stamped into the binary.
package version

// Overridden at release time through -ldflags; the defaults identify a
// local development build.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
