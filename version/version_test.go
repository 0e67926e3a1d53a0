package version

import (
	"strings"
	"testing"
)

func TestGetFullVersionShortensCommit(t *testing.T) {
	oldVersion, oldCommit := Version, CommitHash
	defer func() { Version, CommitHash = oldVersion, oldCommit }()

	Version = "1.2.3"
	CommitHash = "abcdef0123456789"
	if got := GetFullVersion(); got != "1.2.3 (abcdef0)" {
		t.Fatalf("GetFullVersion() = %q", got)
	}

	CommitHash = "abc"
	if got := GetFullVersion(); got != "1.2.3 (abc)" {
		t.Fatalf("GetFullVersion() with short commit = %q", got)
	}
}

func TestGetBuildInfoIncludesVersion(t *testing.T) {
	oldVersion := Version
	defer func() { Version = oldVersion }()

	Version = "9.9.9"
	info := GetBuildInfo()
	if !strings.Contains(info, "Version: 9.9.9") {
		t.Fatalf("GetBuildInfo() = %q", info)
	}
}
