package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/jsonlingo/internal/cli"
	"codeberg.org/snonux/jsonlingo/internal/engine"
	"codeberg.org/snonux/jsonlingo/internal/jsonl"
	"codeberg.org/snonux/jsonlingo/internal/translation"
)

// Processor handles one translation run from parsed flags.
type Processor struct {
	flags *cli.Flags
	log   *zap.Logger

	// port overrides the configured provider when set; used by tests.
	port translation.Port
}

// NewProcessor creates a new run processor
func NewProcessor(flags *cli.Flags, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{flags: flags, log: logger}
}

// NewProcessorWithPort creates a processor using a fixed backend port
func NewProcessorWithPort(flags *cli.Flags, logger *zap.Logger, port translation.Port) *Processor {
	p := NewProcessor(flags, logger)
	p.port = port
	return p
}

// Run translates every selected record of inputFile and writes the
// results. Output is all-or-nothing: a failed batch leaves no file.
func (p *Processor) Run(ctx context.Context, inputFile string) error {
	port := p.port
	if port == nil {
		built, cleanup, err := translation.NewPort(ctx, p.translationConfig(), p.log)
		if err != nil {
			return err
		}
		defer cleanup()
		port = built
	}

	p.log.Info("loading records", zap.String("input", inputFile))
	records, err := jsonl.ReadFile(inputFile)
	if err != nil {
		return err
	}
	p.log.Info("records loaded", zap.Int("count", len(records)))

	start := time.Now()
	results, err := engine.TranslateBatch(ctx, records, port, engine.Options{
		Concurrency: p.flags.Tasks,
		RecordLimit: p.flags.Limit,
	}, p.log)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	p.log.Info("translation completed",
		zap.Int("records", len(results)),
		zap.Duration("elapsed", time.Since(start)))

	outputFile := p.outputPath(inputFile)
	if dir := filepath.Dir(outputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := jsonl.WriteFile(outputFile, results); err != nil {
		return err
	}
	p.log.Info("translations saved", zap.String("output", outputFile))

	return nil
}

// outputPath returns the explicit --output value, or the original's
// convention of translated/<input name> next to the working directory.
func (p *Processor) outputPath(inputFile string) string {
	if p.flags.OutputFile != "" {
		return p.flags.OutputFile
	}
	return filepath.Join("translated", filepath.Base(inputFile))
}

func (p *Processor) translationConfig() translation.Config {
	return translation.Config{
		Provider:    p.flags.Provider,
		Model:       p.flags.Model,
		APIKey:      cli.GetAPIKey(p.flags.Provider),
		BaseURL:     p.flags.BaseURL,
		Language:    cli.ResolveLanguage(p.flags.Language),
		Temperature: float32(p.flags.Temperature),
		Timeout:     p.flags.Timeout,
		MaxRetries:  p.flags.MaxRetries,
		CachePath:   p.flags.CachePath,
	}
}
