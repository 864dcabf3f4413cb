package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/careerflow-ai/careerflow/config"
)

// Client calls the Gemini API through the official genai SDK.
type Client struct {
	cfg    config.GeminiConfig
	client *genai.Client
}

func New(cfg config.GeminiConfig) (*Client, error) {
	c, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	return &Client{cfg: cfg, client: c}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	gcfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(c.cfg.Temperature)),
	}
	if c.cfg.MaxTokens > 0 {
		gcfg.MaxOutputTokens = int32(c.cfg.MaxTokens)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), gcfg)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty completion from %s", c.cfg.Model)
	}
	return text, nil
}
