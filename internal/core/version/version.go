// Package version reports what build is running
package version

import "runtime/debug"

// Set at link time:
//
//	-ldflags "-X dashkit/internal/core/version.version=v0.1.0 -X dashkit/internal/core/version.commit=abcd"
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo is served by GET /version
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the link time values, falling back to the vcs stamp go build records
func Info() BuildInfo {
	bi := BuildInfo{Service: "dashkit-api", Version: version, Commit: commit, Date: date}
	if info, ok := debug.ReadBuildInfo(); ok {
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
		bi.Commit = "none"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
}
