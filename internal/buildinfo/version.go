// Package buildinfo reports the version of the wayfinder binary.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/MaastrichtU-BISS/wayfinder/internal/buildinfo.Version=v1.0.0 \
//	    -X github.com/MaastrichtU-BISS/wayfinder/internal/buildinfo.Commit=$(git rev-parse HEAD)"
//
// A binary installed with go install carries no ldflags; its module version
// and VCS revision are read from the embedded build information instead.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the resolved build identity.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Resolve returns the ldflags values, filling the ones left at their
// defaults from the embedded build information when it has them.
func Resolve() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	return fill(info, bi)
}

func fill(info Info, bi *debug.BuildInfo) Info {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		}
	}
	return info
}

// Template returns the cobra version template for info.
func (info Info) Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", info.Version, info.Commit, info.Date)
}
