// Package buildinfo reports which promptgen build produced a prompts file.
// The release build fills in the variables below with -ldflags -X; a plain
// go build leaves the placeholders.
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	GitBranch = "unknown"
	BuildTime = "unknown"
)

// Info returns the stamped values together with the Go toolchain and
// target platform, keyed the way `promptgen -version` prints them.
func Info() map[string]string {
	return map[string]string{
		"version":    Version,
		"git_commit": GitCommit,
		"git_branch": GitBranch,
		"build_time": BuildTime,
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
	}
}

// String is the headline of the -version output.
func String() string {
	return fmt.Sprintf("promptgen %s (%s@%s) built %s", Version, GitCommit, GitBranch, BuildTime)
}
