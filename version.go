package menuval

import "runtime/debug"

// Release identity. GitCommit and BuildDate are set with ldflags:
//
//	go build -ldflags "-X github.com/ZaguanLabs/menuval.GitCommit=$(git rev-parse HEAD)"
const (
	Name        = "menuval"
	Description = "Restaurant menu validator and English/Arabic translator"
	Version     = "0.3.0"
	Repository  = "https://github.com/ZaguanLabs/menuval"
)

var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// commit prefers the ldflags value and falls back to the VCS stamp that
// `go build` records in the binary.
func commit() string {
	if GitCommit != "" && GitCommit != "unknown" {
		return GitCommit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}

// FullVersion is Version plus a short commit suffix when one is known.
func FullVersion() string {
	c := commit()
	if len(c) > 7 {
		c = c[:7]
	}
	if c == "" {
		return Version
	}
	return Version + "+" + c
}

// UserAgent is sent with outgoing translation and Sheets requests.
func UserAgent() string {
	return Name + "/" + Version
}
