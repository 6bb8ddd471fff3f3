package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestFindConfig_Explicit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	os.WriteFile(path, []byte("model: llama3\n"), 0600)

	got, err := FindConfig(path)
	if err != nil {
		t.Fatalf("FindConfig(%q) error: %v", path, err)
	}
	if got != path {
		t.Errorf("FindConfig(%q) = %q, want %q", path, got, path)
	}
}

func TestFindConfig_ExplicitMissing(t *testing.T) {
	_, err := FindConfig("/nonexistent/promptgen.yaml")
	if err == nil {
		t.Fatal("FindConfig with missing explicit path should error")
	}
	if errors.Is(err, ErrNoConfig) {
		t.Error("missing explicit path should not report ErrNoConfig")
	}
}

func TestFindConfig_SearchPath(t *testing.T) {
	// Run from an empty directory with HOME pointed elsewhere so neither
	// the CWD nor the user config directory can satisfy the search.
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	orig, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(orig)

	if _, err := os.Stat("/etc/promptgen/config.yaml"); err == nil {
		t.Skip("system config present")
	}

	_, err := FindConfig("")
	if !errors.Is(err, ErrNoConfig) {
		t.Fatalf("FindConfig(\"\") error = %v, want ErrNoConfig", err)
	}
}

func TestFindConfig_CWD(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "promptgen.yaml")
	os.WriteFile(path, []byte("stream: true\n"), 0600)

	orig, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(orig)

	got, err := FindConfig("")
	if err != nil {
		t.Fatalf("FindConfig(\"\") error: %v", err)
	}
	if got != "promptgen.yaml" {
		t.Errorf("FindConfig(\"\") = %q, want %q", got, "promptgen.yaml")
	}
}

func TestLoad_KeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "promptgen.yaml")
	os.WriteFile(path, []byte("log_level: debug\n"), 0600)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("model = %q, want %q", cfg.Model, DefaultModel)
	}
	if !cfg.ASCIIOutput {
		t.Error("ascii_output should default to true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "promptgen.yaml")
	os.WriteFile(path, []byte("model: ${PROMPTGEN_TEST_MODEL}\n"), 0600)
	t.Setenv("PROMPTGEN_TEST_MODEL", "qwen3:4b")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Model != "qwen3:4b" {
		t.Errorf("model = %q, want %q", cfg.Model, "qwen3:4b")
	}
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "promptgen.yaml")
	os.WriteFile(path, []byte("model: [unclosed\n"), 0600)

	if _, err := Load(path); err == nil {
		t.Fatal("Load should fail on malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"json format", func(c *Config) { c.LogFormat = "json" }, false},
		{"empty format", func(c *Config) { c.LogFormat = "" }, false},
		{"trace level", func(c *Config) { c.LogLevel = "TRACE" }, false},
		{"empty model", func(c *Config) { c.Model = "" }, true},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{" Debug ", slog.LevelDebug},
		{"trace", LevelTrace},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLogLevel(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Error("ParseLogLevel(\"verbose\") should error")
	}
}

func TestReplaceLogLevelNames(t *testing.T) {
	a := ReplaceLogLevelNames(nil, slog.Any(slog.LevelKey, LevelTrace))
	if got := a.Value.String(); got != "TRACE" {
		t.Errorf("trace level rendered as %q, want TRACE", got)
	}

	a = ReplaceLogLevelNames(nil, slog.Any(slog.LevelKey, slog.LevelInfo))
	if got := a.Value.Any().(slog.Level); got != slog.LevelInfo {
		t.Errorf("info level rewritten to %v", got)
	}
}
