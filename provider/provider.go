package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/careerflow-ai/careerflow/config"
	"github.com/careerflow-ai/careerflow/provider/gemini"
	"github.com/careerflow-ai/careerflow/provider/openai"
)

// Provider is the black-box text generation call every agent depends on.
// Implementations are synchronous and fallible; callers bound latency with
// the context and must not retry automatically.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Kind selects the backing LLM service.
type Kind string

const (
	Gemini Kind = "gemini"
	OpenAI Kind = "openai"
)

// CallError marks a network/auth/quota failure of the generative service.
// The HTTP layer maps it to a generic upstream error without leaking the
// underlying diagnostic text.
type CallError struct {
	Provider string
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s generate: %v", e.Provider, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// IsCallFailure reports whether err originated from the generative service.
func IsCallFailure(err error) bool {
	var ce *CallError
	return errors.As(err, &ce)
}

// New creates a provider from configuration.
func New(cfg config.ProvidersConfig) (Provider, error) {
	switch Kind(cfg.Active) {
	case Gemini, "":
		if cfg.Gemini.APIKey == "" {
			return nil, errors.New("gemini api key not configured (providers.gemini.api_key)")
		}
		c, err := gemini.New(cfg.Gemini)
		if err != nil {
			return nil, err
		}
		return &failable{name: "gemini", inner: c}, nil
	case OpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, errors.New("openai api key not configured (providers.openai.api_key)")
		}
		return &failable{name: "openai", inner: openai.New(cfg.OpenAI)}, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Active)
	}
}

// failable tags every client error with CallError so the boundary can tell
// model failures apart from client errors.
type failable struct {
	name  string
	inner Provider
}

func (f *failable) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := f.inner.Generate(ctx, prompt)
	if err != nil {
		return "", &CallError{Provider: f.name, Err: err}
	}
	return out, nil
}
