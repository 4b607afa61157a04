// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestBuildInfoString(t *testing.T) {
	info := BuildInfo{Version: "1.2.3", Commit: "abc1234", BuildTime: "2026-10-17T00:00:00Z"}
	if got := info.String(); got != "1.2.3 (abc1234, 2026-10-17T00:00:00Z)" {
		t.Errorf("String() = %q", got)
	}
	info.Dirty = true
	if got := info.String(); got != "1.2.3 (abc1234-dirty, 2026-10-17T00:00:00Z)" {
		t.Errorf("dirty String() = %q", got)
	}
}

func TestCurrentUsesInjectedValues(t *testing.T) {
	defer func(commit, dirty, buildTime string) {
		GitCommit, GitDirty, BuildTime = commit, dirty, buildTime
	}(GitCommit, GitDirty, BuildTime)

	GitCommit, GitDirty, BuildTime = "def5678", "true", "2026-01-01T00:00:00Z"
	info := Current()
	if info.Commit != "def5678" || !info.Dirty || info.BuildTime != "2026-01-01T00:00:00Z" {
		t.Errorf("Current() = %+v", info)
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", info.Platform)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Version+" (") {
		t.Errorf("Full() = %q, want prefix %q", full, Version+" (")
	}
	if !strings.Contains(full, "Go: "+runtime.Version()) {
		t.Errorf("Full() lacks the Go version: %q", full)
	}
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
}

func TestShortRevision(t *testing.T) {
	if got := shortRevision("0123456789abcdef"); got != "0123456" {
		t.Errorf("shortRevision = %q", got)
	}
	if got := shortRevision("abc"); got != "abc" {
		t.Errorf("shortRevision = %q", got)
	}
}
