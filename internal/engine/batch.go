package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/jsonlingo/internal/translation"
	"codeberg.org/snonux/jsonlingo/internal/tree"
)

// DefaultConcurrency is the gate size used when Options leaves it unset.
const DefaultConcurrency = 8

// Options configure a batch run.
type Options struct {
	// Concurrency is the gate size shared by every record; values below
	// one fall back to DefaultConcurrency.
	Concurrency int
	// RecordLimit caps how many records are translated, counted from the
	// front of the batch. Negative means all records.
	RecordLimit int
}

// TranslateBatch translates the selected records concurrently through a
// single shared gate and returns the results in input order: result[i]
// corresponds to records[i]. If any record fails, the whole batch fails
// and in-flight siblings are cancelled; no partial output is returned.
func TranslateBatch(ctx context.Context, records []tree.Value, port translation.Port, opts Options, logger *zap.Logger) ([]tree.Value, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	n := len(records)
	if opts.RecordLimit >= 0 && opts.RecordLimit < n {
		n = opts.RecordLimit
	}

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	// The one gate of the run. Not per record: a batch of wide records
	// must not multiply the cap.
	gate := NewGate(concurrency)
	translator := New(port, gate, logger)

	logger.Info("beginning translation",
		zap.Int("records", n),
		zap.Int("concurrency", concurrency))

	results := make([]tree.Value, n)
	g, ctx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error {
			out, err := translator.translate(ctx, records[i], fmt.Sprintf("record #%d", i+1))
			if err != nil {
				return &RecordError{Index: i, Err: err}
			}
			results[i] = out
			logger.Debug("record translated", zap.Int("record", i+1))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &BatchError{Err: err}
	}

	return results, nil
}
