// Package provider is the LLM gateway: one prompt in, one text completion out.
//
// Backends implement Completer and may fail; Gateway turns every failure into
// an outcome.Text so callers never handle Go errors from the model.
package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/petasbytes/taskrunner/internal/config"
	"github.com/petasbytes/taskrunner/internal/logging"
	"github.com/petasbytes/taskrunner/internal/outcome"
	"github.com/petasbytes/taskrunner/internal/windowing"
)

// ErrorLabel prefixes every gateway failure message.
const ErrorLabel = "LLM API error"

// ErrEmptyResponse is returned by backends when the model produced no text candidates.
var ErrEmptyResponse = errors.New("empty response")

// Completer sends a single prompt and returns the completion text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ClientConfig carries the credentials and transport for a backend.
// HTTPClient and BaseURL are optional; tests use them to intercept requests.
type ClientConfig struct {
	Backend    string
	Model      string
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// New builds the Completer named by cfg.Backend.
func New(ctx context.Context, cfg ClientConfig) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s backend: missing API key", cfg.Backend)
	}
	switch cfg.Backend {
	case config.BackendGemini:
		return NewGeminiClient(ctx, cfg)
	case config.BackendAnthropic:
		return NewAnthropicClient(cfg), nil
	case config.BackendOpenAI:
		return NewOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// Gateway wraps a Completer with the errors-as-values policy.
type Gateway struct {
	backend Completer
	logger  *slog.Logger
}

// NewGateway returns a Gateway over c. A nil logger discards.
func NewGateway(c Completer, logger *slog.Logger) *Gateway {
	return &Gateway{backend: c, logger: logging.OrDiscard(logger)}
}

// Generate returns the model's completion verbatim, or a GatewayError text.
func (g *Gateway) Generate(ctx context.Context, prompt string) outcome.Text {
	if g == nil || g.backend == nil {
		return outcome.Fail(outcome.GatewayError, ErrorLabel, errors.New("no backend configured"))
	}
	start := time.Now()
	text, err := g.backend.Complete(ctx, prompt)
	if err != nil {
		g.logger.Warn("llm call failed", "prompt_runes", windowing.RuneLen(prompt), "duration", time.Since(start), "err", err)
		return outcome.Fail(outcome.GatewayError, ErrorLabel, err)
	}
	g.logger.Debug("llm call", "prompt_runes", windowing.RuneLen(prompt), "output_bytes", len(text), "duration", time.Since(start))
	return outcome.Ok(text)
}
