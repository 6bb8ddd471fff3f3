package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()
	for _, k := range []string{"version", "git_commit", "git_branch", "build_time", "go_version", "os", "arch"} {
		if info[k] == "" {
			t.Errorf("Info()[%q] is empty", k)
		}
	}
	if info["go_version"] != runtime.Version() {
		t.Errorf("go_version = %q, want %q", info["go_version"], runtime.Version())
	}
}

func TestString(t *testing.T) {
	orig := Version
	Version = "v1.2.3"
	defer func() { Version = orig }()

	if got := String(); !strings.HasPrefix(got, "promptgen v1.2.3 (") {
		t.Errorf("String() = %q", got)
	}
}
