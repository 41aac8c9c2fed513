// Package version reports what build of galaxy-api is running
package version

import "runtime/debug"

// stamped at link time:
//
//	go build -ldflags "-X galaxy/internal/core/version.version=v0.1.0 -X galaxy/internal/core/version.commit=$(git rev-parse --short HEAD)"
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo is served by /meta/version
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date,omitempty"`
	GoVersion string `json:"go_version"`
}

// Info falls back to the vcs stamp the toolchain embeds when ldflags were not set
func Info() BuildInfo {
	bi := BuildInfo{Service: "galaxy-api", Version: version, Commit: commit, Date: date}
	if info, ok := debug.ReadBuildInfo(); ok {
		bi.GoVersion = info.GoVersion
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "":
				bi.Date = s.Value
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "unknown"
	}
	return bi
}
