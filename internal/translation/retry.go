package translation

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// retryBaseDelay is the first retry's wait; each further attempt doubles it.
const retryBaseDelay = time.Second

// Retrying decorates a Port with the run's retry policy. A failed call is
// repeated up to maxRetries times with exponential backoff; context
// cancellation stops the loop immediately.
type Retrying struct {
	next       Port
	maxRetries int
	baseDelay  time.Duration
	log        *zap.Logger
}

// NewRetrying wraps port so that transient failures are retried.
func NewRetrying(port Port, maxRetries int, logger *zap.Logger) *Retrying {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retrying{next: port, maxRetries: maxRetries, baseDelay: retryBaseDelay, log: logger}
}

// Translate implements Port.
func (r *Retrying) Translate(ctx context.Context, text string) (string, error) {
	var lastErr error

	delay := r.baseDelay
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			r.log.Debug("retrying translation",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr))

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		out, err := r.next.Translate(ctx, text)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	return "", lastErr
}
