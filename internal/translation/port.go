package translation

import (
	"context"
	"fmt"
	"time"
)

// Port is the single capability the translation engine needs from a
// backend: one text in, one translated text out.
type Port interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Func adapts a plain function to the Port interface.
type Func func(ctx context.Context, text string) (string, error)

// Translate implements Port.
func (f Func) Translate(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// PortError reports a failed backend call.
type PortError struct {
	Provider string
	Err      error
}

func (e *PortError) Error() string {
	return fmt.Sprintf("%s translation failed: %v", e.Provider, e.Err)
}

func (e *PortError) Unwrap() error {
	return e.Err
}

// Config carries the backend settings for one run. It is built once from
// flags and environment and passed down explicitly; there is no shared
// client state.
type Config struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Language    string
	Temperature float32
	Timeout     time.Duration
	MaxRetries  int
	CachePath   string
}

// Prompt renders the instruction sent to the model for one text.
func Prompt(language, text string) string {
	return fmt.Sprintf("I will give you a text that you will have to translate to %s. "+
		"Just give me the translation, without any additional context or formatting. "+
		"Keep the syntax as it was, for example if there is no punctuation, don't add any. "+
		"Here is the text you have to translate : %s", language, text)
}
