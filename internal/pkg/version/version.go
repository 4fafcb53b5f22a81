// Package version exposes build metadata embedded at generate time.
package version

import (
	_ "embed"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

//go:generate sh -c "printf %s $(git rev-parse HEAD) > commit.txt"
//go:generate sh -c "printf %s $(git rev-parse --abbrev-ref HEAD) > branch.txt"
//go:generate sh -c "printf %s $(git describe --tags --abbrev=0 2>/dev/null || echo none) > tag.txt"
//go:generate sh -c "git diff-index --quiet HEAD -- && echo clean > dirty.txt || echo dirty > dirty.txt"

//go:embed commit.txt
var commit string

//go:embed branch.txt
var branch string

//go:embed tag.txt
var tag string

//go:embed dirty.txt
var dirty string

// Info describes the binary.
type Info struct {
	Tag       string
	Branch    string
	Commit    string
	Dirty     bool
	GoVersion string
}

// Get returns the build metadata. When the embedded commit is unknown, the
// VCS revision recorded by the Go toolchain is used instead.
func Get() Info {
	info := Info{
		Tag:       strings.TrimSpace(tag),
		Branch:    strings.TrimSpace(branch),
		Commit:    strings.TrimSpace(commit),
		Dirty:     strings.TrimSpace(dirty) == "dirty",
		GoVersion: runtime.Version(),
	}
	if info.Commit == "" || info.Commit == "unknown" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			applyBuildSettings(&info, bi.Settings)
		}
	}
	return info
}

func applyBuildSettings(info *Info, settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
}

// String renders the metadata the way the version command prints it.
func (i Info) String() string {
	return fmt.Sprintf("Tag: %s\nBranch: %s\nCommit: %s\nDirty: %v\nGo: %s\n", i.Tag, i.Branch, i.Commit, i.Dirty, i.GoVersion)
}
