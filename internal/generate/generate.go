// Package generate turns a requirements file into a prompts file: it
// selects the enabled stages, renders them, and writes the prompt records
// as an indented JSON array.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nugget/promptgen/internal/config"
	"github.com/nugget/promptgen/internal/prompts"
	"github.com/nugget/promptgen/internal/requirements"
)

// ErrOutputWrite is returned when the prompts file cannot be written.
var ErrOutputWrite = errors.New("cannot write prompts file")

// PromptRecord is one element of the output array. Field order is the
// serialized order.
type PromptRecord struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
	Stream bool   `json:"stream"`
}

// Options configures a [Generator]. The zero value is usable: an empty
// Model means [config.DefaultModel] and a nil Logger discards output.
type Options struct {
	Model  string
	Stream bool
	// ASCII escapes non-ASCII characters in the written JSON.
	ASCII  bool
	Logger *slog.Logger
}

// Generator renders prompt files. It holds no per-run state and may be
// reused.
type Generator struct {
	model  string
	stream bool
	ascii  bool
	logger *slog.Logger
}

// New creates a Generator from opts.
func New(opts Options) *Generator {
	g := &Generator{
		model:  opts.Model,
		stream: opts.Stream,
		ascii:  opts.ASCII,
		logger: opts.Logger,
	}
	if g.model == "" {
		g.model = config.DefaultModel
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g
}

// FromConfig creates a Generator using the record and output settings
// in cfg.
func FromConfig(cfg *config.Config, logger *slog.Logger) *Generator {
	return New(Options{
		Model:  cfg.Model,
		Stream: cfg.Stream,
		ASCII:  cfg.ASCIIOutput,
		Logger: logger,
	})
}

// Build renders one record per enabled stage, in stage order.
func (g *Generator) Build(rec requirements.Record) ([]PromptRecord, error) {
	selected := prompts.Select(rec)
	out := make([]PromptRecord, 0, len(selected))

	for _, rule := range selected {
		text, err := rule.Render(rec)
		if err != nil {
			return nil, err
		}
		g.logger.Debug("stage rendered", "stage", rule.Tag, "bytes", len(text))
		g.logger.Log(context.Background(), config.LevelTrace, "stage prompt", "stage", rule.Tag, "prompt", text)

		out = append(out, PromptRecord{
			Name:   rule.Tag,
			Prompt: text,
			Model:  g.model,
			Stream: g.stream,
		})
	}

	return out, nil
}

// Generate reads the requirements at requirementsPath and writes the
// rendered prompts to outputPath, replacing any existing file. It returns
// the number of prompt records written.
//
// Nothing is written unless every earlier step succeeds, and the file is
// replaced atomically so a failed write never leaves a partial file.
func (g *Generator) Generate(requirementsPath, outputPath string) (int, error) {
	rec, err := requirements.Load(requirementsPath)
	if err != nil {
		return 0, err
	}
	g.logger.Debug("requirements loaded", "path", requirementsPath, "resource", rec.Name)

	records, err := g.Build(rec)
	if err != nil {
		return 0, err
	}

	data, err := Encode(records, g.ascii)
	if err != nil {
		return 0, err
	}

	if err := writeAtomic(outputPath, data); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrOutputWrite, outputPath, err)
	}

	g.logger.Debug("prompts generated", "resource", rec.Name, "stages", len(records), "path", outputPath)
	return len(records), nil
}

// writeAtomic writes data to a temp file beside path and renames it into
// place.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	// CreateTemp creates files 0600.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
