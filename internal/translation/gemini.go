package translation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiTranslator implements Port using the Gemini API.
type GeminiTranslator struct {
	client *genai.Client
	config Config
	log    *zap.Logger
}

// NewGeminiTranslator creates a new Gemini-backed translator.
func NewGeminiTranslator(ctx context.Context, cfg Config, logger *zap.Logger) (*GeminiTranslator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key not found")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTranslator{
		client: client,
		config: cfg,
		log:    logger,
	}, nil
}

// Translate sends one text through the Gemini generate-content endpoint.
func (t *GeminiTranslator) Translate(ctx context.Context, text string) (string, error) {
	callCtx := ctx
	if t.config.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, t.config.Timeout)
		defer cancel()
	}

	genConfig := &genai.GenerateContentConfig{}
	if t.config.Temperature > 0 {
		genConfig.Temperature = genai.Ptr(t.config.Temperature)
	}

	resp, err := t.client.Models.GenerateContent(callCtx, t.config.Model,
		genai.Text(Prompt(t.config.Language, text)), genConfig)
	if err != nil {
		return "", &PortError{Provider: "gemini", Err: fmt.Errorf("Gemini API error: %w", err)}
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", &PortError{Provider: "gemini", Err: fmt.Errorf("no translation returned")}
	}
	return out, nil
}
