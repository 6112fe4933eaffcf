// Package version holds build-time version metadata, injected via ldflags.
package version

// Version is the release version, set at build time.
var Version = "dev"

// Commit is the git commit hash, set at build time.
var Commit = "none"
