// Package llmchat implements the LLM backend contract over the
// OpenAI-compatible chat-completions API. The base URL is swappable, so the
// same client talks to a local server or a hosted one.
package llmchat

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"answer-orchestrator/internal/domain"
)

// Client issues single chat-completion requests.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	logger      *slog.Logger
}

// NewClient builds an LLM client against the given OpenAI-compatible base URL.
func NewClient(baseURL, apiKey, model string, temperature float64, httpClient *http.Client, logger *slog.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: float32(temperature),
		logger:      logger,
	}
}

// Chat sends one conversation and returns the generated text.
func (c *Client) Chat(ctx context.Context, messages []domain.Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("chat completion failed", "model", c.model, "error", err)
		return "", fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		c.logger.Error("chat completion returned no choices", "model", c.model)
		return "", fmt.Errorf("%w: empty choices", domain.ErrLLMUnavailable)
	}

	c.logger.Debug("chat completion succeeded",
		"model", c.model,
		"duration_ms", time.Since(start).Milliseconds())

	return resp.Choices[0].Message.Content, nil
}
