package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// LevelTrace sits below [slog.LevelDebug]. Only full rendered prompt
// bodies are logged at this level; they run to several kilobytes each.
const LevelTrace = slog.Level(-8)

// ParseLogLevel maps the log_level config value to a level. Matching
// ignores case and surrounding space; an empty value means info. What
// promptgen logs at each level:
//
//	trace  rendered prompt text
//	debug  requirements path, each selected stage, output path and count
//	info   the config file in use
//	warn   unused
//	error  unused
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (valid: trace, debug, info, warn, error)", s)
	}
}

// ReplaceLogLevelNames is passed as [slog.HandlerOptions.ReplaceAttr] so
// trace records print as TRACE. Without it slog names them DEBUG-4.
func ReplaceLogLevelNames(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level, ok := a.Value.Any().(slog.Level)
		if ok && level == LevelTrace {
			a.Value = slog.StringValue("TRACE")
		}
	}
	return a
}
