package version

import (
	"strings"
	"testing"
)

func withBuild(t *testing.T, v, built, commit string) {
	t.Helper()
	oldV, oldB, oldC := Version, BuildTime, GitCommit
	Version, BuildTime, GitCommit = v, built, commit
	t.Cleanup(func() { Version, BuildTime, GitCommit = oldV, oldB, oldC })
}

func TestGetVersionString(t *testing.T) {
	tests := []struct {
		built string
		want  string
	}{
		{"unknown", "v1.2.3"},
		{"not-a-time", "v1.2.3"},
		{"2026-01-02T03:04:05Z", "v1.2.3 (built 2026-01-02 03:04:05 UTC)"},
	}

	for _, tt := range tests {
		withBuild(t, "v1.2.3", tt.built, "unknown")
		if got := GetVersionString(); got != tt.want {
			t.Errorf("GetVersionString() with BuildTime=%q = %q, want %q", tt.built, got, tt.want)
		}
	}
}

func TestInfo(t *testing.T) {
	withBuild(t, "dev", "unknown", "unknown")
	if got := Info(); !strings.HasPrefix(got, "dev (development build") {
		t.Errorf("Info() = %q", got)
	}

	withBuild(t, "v1.0.0", "2026-01-02T03:04:05Z", "0123456789abcdef")
	got := Info()
	if !strings.Contains(got, "commit 01234567,") {
		t.Errorf("Info() = %q, want short commit", got)
	}

	withBuild(t, "v1.0.0", "2026-01-02T03:04:05Z", "abc")
	if got := Info(); !strings.Contains(got, "commit abc,") {
		t.Errorf("Info() = %q, want short commit kept whole", got)
	}
}
