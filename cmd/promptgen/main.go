// Promptgen turns a resource requirements file into a list of stage
// prompts for generating CRM boilerplate.
//
// The requirements file names a resource and flags the artifacts it needs
// (validation, domain model, controller, ...). Promptgen writes one prompt
// record per enabled stage, in a fixed stage order, as a JSON array. It
// never contacts a model; the records are input for a separate process.
//
// Usage:
//
//	promptgen [flags] <requirements.json> <output_prompts.json>
//	promptgen [flags] -- <requirements.json> <output_prompts.json>
//	promptgen -rules        List the stage table
//	promptgen -version      Print version and build information
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/nugget/promptgen/internal/buildinfo"
	"github.com/nugget/promptgen/internal/config"
	"github.com/nugget/promptgen/internal/generate"
	"github.com/nugget/promptgen/internal/prompts"
)

// main constructs the OS-level environment and delegates to [run], which
// keeps os.Exit and os.Args out of the logic so tests can drive it.
func main() {
	ctx := context.Background()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// run is the real entry point. The success line goes to stdout; logs
// go to stderr. A wrong number of positional arguments prints usage and
// returns nil.
func run(ctx context.Context, stdout io.Writer, stderr io.Writer, args []string) error {
	// Parsed by hand: the flag package's globals make concurrent test
	// calls to run impossible.
	var configPath string
	var verbose, showVersion, showRules bool
	var positional []string

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-config" && i+1 < len(args):
			configPath = args[i+1]
			i++ // skip the value
		case strings.HasPrefix(args[i], "-config="):
			configPath = strings.TrimPrefix(args[i], "-config=")
		case args[i] == "-v" || args[i] == "-verbose":
			verbose = true
		case args[i] == "-version" || args[i] == "--version":
			showVersion = true
		case args[i] == "-rules":
			showRules = true
		case args[i] == "-h" || args[i] == "-help" || args[i] == "--help":
			return printUsage(stdout)
		case args[i] == "--":
			positional = append(positional, args[i+1:]...)
			i = len(args)
		case strings.HasPrefix(args[i], "-") && args[i] != "-":
			return fmt.Errorf("unknown flag: %s (put -- before paths that start with -)", args[i])
		default:
			positional = append(positional, args[i])
		}
	}

	if showVersion {
		return runVersion(stdout)
	}
	if showRules {
		return runRules(stdout)
	}
	if len(positional) != 2 {
		return printUsage(stdout)
	}

	cfg, cfgPath, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	logger := newLogger(stderr, level, cfg.LogFormat)
	if id, err := uuid.NewV7(); err == nil {
		logger = logger.With("run", id.String())
	}
	if cfgPath != "" {
		logger.Info("config loaded", "path", cfgPath)
	}

	return runGenerate(ctx, stdout, logger, cfg, positional[0], positional[1])
}

// runGenerate renders the prompts file and prints the confirmation line.
func runGenerate(ctx context.Context, stdout io.Writer, logger *slog.Logger, cfg *config.Config, requirementsPath, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g := generate.FromConfig(cfg, logger)
	if _, err := g.Generate(requirementsPath, outputPath); err != nil {
		return fmt.Errorf("generate prompts: %w", err)
	}

	fmt.Fprintf(stdout, "✅ Prompts generated at %s\n", outputPath)
	return nil
}

// runRules prints the stage table in emission order.
func runRules(w io.Writer) error {
	for _, r := range prompts.Rules() {
		fmt.Fprintf(w, "%-24s %-20s %s\n", r.Tag, r.Key, r.Requires)
	}
	return nil
}

// runVersion prints build metadata.
func runVersion(w io.Writer) error {
	info := buildinfo.Info()
	fmt.Fprintln(w, buildinfo.String())
	for _, k := range []string{"version", "git_commit", "git_branch", "build_time", "go_version", "os", "arch"} {
		if v, ok := info[k]; ok {
			fmt.Fprintf(w, "  %-12s %s\n", k+":", v)
		}
	}
	return nil
}

// printUsage writes the help text to w.
func printUsage(w io.Writer) error {
	fmt.Fprintln(w, "Usage: promptgen [flags] <requirements.json> <output_prompts.json>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -config <path>  Path to config file (default: auto-discover)")
	fmt.Fprintln(w, "  -v, -verbose    Debug logging to stderr")
	fmt.Fprintln(w, "  -rules          List stages and the flags that enable them")
	fmt.Fprintln(w, "  -version        Show version information")
	fmt.Fprintln(w, "  --              End of flags; later arguments are paths even if they start with -")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config search order:")
	fmt.Fprintln(w, "  ./promptgen.yaml, ~/.config/promptgen/config.yaml, /etc/promptgen/config.yaml")
	fmt.Fprintln(w, "  The file in use is logged at info level.")
	return nil
}

// newLogger builds the stderr logger in the configured format.
func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: config.ReplaceLogLevelNames,
	}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// loadConfig locates, parses and validates the config file. With no
// explicit path and nothing found in the search paths, it returns the
// defaults and an empty path.
func loadConfig(explicit string) (*config.Config, string, error) {
	cfgPath, err := config.FindConfig(explicit)
	if errors.Is(err, config.ErrNoConfig) {
		return config.Default(), "", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, cfgPath, fmt.Errorf("load config %s: %w", cfgPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cfgPath, fmt.Errorf("load config %s: %w", cfgPath, err)
	}

	return cfg, cfgPath, nil
}
