// Package version holds build information, set via ldflags or read from the
// embedded VCS metadata.
package version

import (
	"runtime"
	"runtime/debug"
)

var (
	Version   string // Set via ldflags.
	Branch    string
	BuildUser string
	BuildDate string

	Revision  = getRevision()
	GoVersion = runtime.Version()
	GoOS      = runtime.GOOS
	GoArch    = runtime.GOARCH
)

// Field is one named piece of build information.
type Field struct {
	Name  string
	Value string
}

// GetVersion returns the release version, or the VCS revision for
// development builds.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	return Revision
}

// Fields returns the build information that is set, in display order.
func Fields() []Field {
	all := []Field{
		{Name: "version", Value: GetVersion()},
		{Name: "revision", Value: Revision},
		{Name: "branch", Value: Branch},
		{Name: "build user", Value: BuildUser},
		{Name: "build date", Value: BuildDate},
		{Name: "go version", Value: GoVersion},
		{Name: "platform", Value: GoOS + "/" + GoArch},
	}

	fields := make([]Field, 0, len(all))
	for _, f := range all {
		if f.Value != "" {
			fields = append(fields, f)
		}
	}

	return fields
}

// getRevision returns the short VCS revision, suffixed with "-dirty" when
// the working tree had local changes.
func getRevision() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	rev := "unknown"
	dirty := false

	for _, s := range buildInfo.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value[:min(len(s.Value), 7)]
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if dirty {
		return rev + "-dirty"
	}

	return rev
}
