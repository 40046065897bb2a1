// Package version exposes build metadata stamped into the lens binary.
package version

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// The following variables can be overridden at build time using -ldflags, e.g.
// -X github.com/kedare/lens/internal/version.Version=1.0.0
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
	BuildUser = "unknown"
	BuildHost = "unknown"
	BuildArch = ""
)

// Info contains metadata about the compiled binary.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	BuildUser string
	BuildHost string
	BuildArch string
	GoVersion string
}

// Get returns build metadata, normalizing defaults where necessary.
func Get() Info {
	arch := strings.TrimSpace(BuildArch)
	if arch == "" {
		arch = runtime.GOOS + "/" + runtime.GOARCH
	}

	return Info{
		Version:   fallback(Version, "dev"),
		Commit:    fallback(Commit, "unknown"),
		BuildDate: fallback(BuildDate, "unknown"),
		BuildUser: fallback(BuildUser, "unknown"),
		BuildHost: fallback(BuildHost, "unknown"),
		BuildArch: arch,
		GoVersion: runtime.Version(),
	}
}

// Short returns "<version> (<commit>)".
func (i Info) Short() string {
	return fmt.Sprintf("%s (%s)", i.Version, i.Commit)
}

// RelativeTime renders the build date relative to now, or "" when the build
// date is not an RFC 3339 timestamp.
func (i Info) RelativeTime() string {
	return i.relativeTo(time.Now())
}

func (i Info) relativeTo(now time.Time) string {
	built, err := time.Parse(time.RFC3339, i.BuildDate)
	if err != nil {
		return ""
	}

	return humanize.RelTime(built, now, "ago", "from now")
}

func fallback(value, defaultValue string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultValue
	}

	return value
}
