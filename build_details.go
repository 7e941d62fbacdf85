package oascompat

import (
	"fmt"
	"runtime"
)

// Set via ldflags at release time.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from, or 'unknown'.
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp, or 'unknown'.
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go runtime version.
func GoVersion() string {
	return runtime.Version()
}

// UserAgent returns the User-Agent string sent when fetching remote documents.
func UserAgent() string {
	return fmt.Sprintf("oascompat/%s", version)
}

// BuildInfo returns a multi-line summary of the build metadata.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s\nPlatform: %s/%s",
		Version(), Commit(), BuildTime(), GoVersion(), runtime.GOOS, runtime.GOARCH)
}
