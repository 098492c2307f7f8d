package translation

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Supported provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// NewPort builds the translation backend for a run: the configured
// provider wrapped with the retry policy and, when a cache path is set,
// the sqlite cache. The returned cleanup function must be called when the
// run is over.
func NewPort(ctx context.Context, cfg Config, logger *zap.Logger) (Port, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		port Port
		err  error
	)
	switch cfg.Provider {
	case ProviderOpenAI, "":
		logger.Info("creating OpenAI translator",
			zap.String("model", cfg.Model),
			zap.String("base_url", cfg.BaseURL))
		port, err = NewOpenAITranslator(cfg, logger)
	case ProviderGemini:
		logger.Info("creating Gemini translator", zap.String("model", cfg.Model))
		port, err = NewGeminiTranslator(ctx, cfg, logger)
	default:
		return nil, nil, fmt.Errorf("unsupported translation provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, nil, err
	}

	if cfg.MaxRetries > 0 {
		port = NewRetrying(port, cfg.MaxRetries, logger)
	}

	cleanup := func() error { return nil }
	if cfg.CachePath != "" {
		cache, err := NewCache(cfg.CachePath, port, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		port = cache
		cleanup = cache.Close
	}

	return port, cleanup, nil
}
