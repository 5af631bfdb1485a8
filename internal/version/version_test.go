package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

// stubBuild sets the linker stamps and embedded build info for one test.
func stubBuild(t *testing.T, version, commit, date string, bi *debug.BuildInfo) {
	t.Helper()
	origVersion, origCommit, origDate, origRead := Version, Commit, Date, readBuildInfo
	t.Cleanup(func() { Version, Commit, Date, readBuildInfo = origVersion, origCommit, origDate, origRead })

	Version, Commit, Date = version, commit, date
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func TestString(t *testing.T) {
	installed := &debug.BuildInfo{Main: debug.Module{Version: "v0.4.1"}}
	dirty := &debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "fedcba9876543210"},
			{Key: "vcs.time", Value: "2026-02-03T04:05:06Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		bi      *debug.BuildInfo
		want    []string
	}{
		{
			name:    "no stamps",
			version: "dev",
			commit:  unknown,
			date:    unknown,
			want:    []string{"chroma version dev ("},
		},
		{
			name:    "linker stamps",
			version: "1.2.3",
			commit:  "0123456789abcdef",
			date:    "2026-01-01T00:00:00Z",
			want:    []string{"chroma version 1.2.3 (", "commit: 01234567,", "built: 2026-01-01T00:00:00Z"},
		},
		{
			name:    "go install",
			version: "dev",
			commit:  unknown,
			date:    unknown,
			bi:      installed,
			want:    []string{"chroma version v0.4.1 ("},
		},
		{
			name:    "dirty checkout",
			version: "dev",
			commit:  unknown,
			date:    unknown,
			bi:      dirty,
			want:    []string{"chroma version dev (", "commit: fedcba98-dirty,", "built: 2026-02-03T04:05:06Z"},
		},
		{
			name:    "linker stamps win",
			version: "1.2.3",
			commit:  "0123456789abcdef",
			date:    "2026-01-01T00:00:00Z",
			bi:      dirty,
			want:    []string{"chroma version 1.2.3 (", "commit: 01234567-dirty,", "built: 2026-01-01T00:00:00Z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubBuild(t, tt.version, tt.commit, tt.date, tt.bi)
			got := String()
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("String() = %q, want containing %q", got, want)
				}
			}
		})
	}
}

func TestShort(t *testing.T) {
	stubBuild(t, "dev", unknown, unknown, &debug.BuildInfo{Main: debug.Module{Version: "v0.4.1"}})
	if got := Short(); got != "v0.4.1" {
		t.Errorf("Short() = %q, want v0.4.1", got)
	}
}
