// Package version provides build information for the Recorder and Feed
// Publisher binaries.
package version

// Version is the current version of the application, set during build.
var Version = "dev"

// Commit is the git commit hash, set during build.
var Commit = "unknown"

// BuildTime is the build timestamp, set during build.
var BuildTime = "unknown"

// Info returns a formatted string with build information, logged once at
// startup by each binary.
func Info(binary string) string {
	return binary + " " + Version + " (commit: " + Commit + ", built: " + BuildTime + ")"
}
