// Package version reports which chroma build is running.
//
// Release builds set the variables below with the linker, for example
//
//	go build -ldflags "-X github.com/chromavant/chroma/internal/version.Version=v0.3.0" ./cmd/chroma
//
// Anything left unset is taken from the module and VCS stamps the Go
// toolchain embeds, so `go install github.com/chromavant/chroma/cmd/chroma@latest`
// and plain checkouts still report a meaningful version.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const unknown = "unknown"

// Linker-settable build stamps.
var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown

	// GoVersion is the toolchain that built the binary.
	GoVersion = runtime.Version()
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info is the output of `chroma version --json`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns the build stamps, filling unset ones from the embedded
// build information.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if bi, ok := readBuildInfo(); ok {
		info = withBuildInfo(info, bi)
	}
	return info
}

func withBuildInfo(info Info, bi *debug.BuildInfo) Info {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == unknown {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == unknown {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String is the line printed by `chroma version`.
func String() string {
	info := GetInfo()
	commit := shortCommit(info.Commit)
	if info.Modified {
		commit += "-dirty"
	}
	if info.Commit != unknown && info.Date != unknown {
		return fmt.Sprintf("chroma version %s (commit: %s, built: %s, %s, %s)",
			info.Version, commit, info.Date, info.GoVersion, info.Platform)
	}
	return fmt.Sprintf("chroma version %s (%s, %s)", info.Version, info.GoVersion, info.Platform)
}

// Short returns the version alone.
func Short() string {
	return GetInfo().Version
}

func shortCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
