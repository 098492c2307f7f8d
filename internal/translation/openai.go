package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAITranslator implements Port using the OpenAI chat completion API
// (or any OpenAI-compatible endpoint via Config.BaseURL).
type OpenAITranslator struct {
	client  *openai.Client
	config  Config
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

// NewOpenAITranslator creates a new OpenAI-backed translator.
func NewOpenAITranslator(cfg Config, logger *zap.Logger) (*OpenAITranslator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openai-translate",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &OpenAITranslator{
		client:  openai.NewClientWithConfig(clientConfig),
		config:  cfg,
		breaker: breaker,
		log:     logger,
	}, nil
}

// Translate sends one text through the chat completion endpoint.
func (t *OpenAITranslator) Translate(ctx context.Context, text string) (string, error) {
	callCtx := ctx
	if t.config.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, t.config.Timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: t.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: Prompt(t.config.Language, text),
			},
		},
		Temperature: t.config.Temperature,
	}

	result, err := t.breaker.Execute(func() (interface{}, error) {
		resp, err := t.client.CreateChatCompletion(callCtx, req)
		if err != nil {
			return nil, fmt.Errorf("OpenAI API error: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no translation returned")
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	})
	if err != nil {
		return "", &PortError{Provider: "openai", Err: err}
	}

	return result.(string), nil
}
