package app

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/heartmarshall/doctrkr-backend/internal/app.Version=1.4.0".
// Commit and BuildTime fall back to the VCS stamp the Go toolchain embeds.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion is reported in the startup log and by GET /health.
func BuildVersion() string {
	commit, built, dirty := Commit, BuildTime, false
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "" {
					commit = s.Value
				}
			case "vcs.time":
				if built == "" {
					built = s.Value
				}
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
	}
	return formatVersion(Version, commit, built, dirty)
}

func formatVersion(version, commit, built string, dirty bool) string {
	if commit == "" {
		commit = "unknown"
	} else if len(commit) > 12 {
		commit = commit[:12]
	}
	if dirty {
		commit += "-dirty"
	}
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, built)
}
