// Package assistant talks to an OpenAI-compatible chat-completion API.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"agribot/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

var (
	ErrNotConfigured = errors.New("assistant API key not configured")
	ErrEmptyReply    = errors.New("assistant returned an empty reply")
)

// Client sends single-turn chat completions
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	enabled bool
}

// NewClient builds a Client from the assistant configuration
func NewClient(cfg config.AssistantConfig) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		enabled: cfg.APIKey != "",
	}
}

// Complete sends the system prompt and the user message and returns the reply text.
// The call is not retried.
func (c *Client) Complete(ctx context.Context, systemPrompt, message string) (string, error) {
	if !c.enabled {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}
