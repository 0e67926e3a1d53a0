package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build metadata, overridden with
// -ldflags "-X launcher/version.Version=x.y.z -X launcher/version.CommitHash=... -X launcher/version.BuildTime=..."
var (
	Version    = "dev"
	CommitHash = ""
	BuildTime  = ""
)

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

// Commit returns the ldflags commit or, failing that, the VCS revision
// recorded by the Go toolchain.
func Commit() string {
	if CommitHash != "" {
		return CommitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}

// GetFullVersion returns the version with a short commit suffix when known.
func GetFullVersion() string {
	commit := Commit()
	if commit == "unknown" {
		return Version
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return Version + " (" + commit + ")"
}

// GetBuildInfo returns multi-line build metadata for `launcher version`.
func GetBuildInfo() string {
	built := BuildTime
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo: %s %s/%s",
		Version, Commit(), built, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
