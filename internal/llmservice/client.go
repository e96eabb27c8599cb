package llmservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"scholar-rag/internal/config"
)

// Client wraps one chat-completion endpoint. Construction validates the
// configuration once; a missing credential is a fatal configuration error
// here, not at first use.
type Client struct {
	llm llms.Model
}

func New(cfg *config.LLMConfig) (*Client, error) {
	switch cfg.Provider {
	case "openai":
		key := cfg.APIKey()
		if key == "" {
			return nil, fmt.Errorf("missing API key for generation model %s (set %s)", cfg.Model, cfg.KeyEnv)
		}
		llm, err := openai.New(
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithToken(strings.TrimPrefix(key, "Bearer ")),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("initializing generation LLM: %w", err)
		}
		return &Client{llm: llm}, nil
	case "ollama":
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("initializing generation LLM: %w", err)
		}
		return &Client{llm: llm}, nil
	default:
		return nil, fmt.Errorf("unknown generation provider: %q", cfg.Provider)
	}
}

// Generate runs one synchronous completion call for the prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}
	res, err := c.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return res.Choices[0].Content, nil
}
