// Package llm turns the retrieved-facts prompt into a conversational answer
// via the Anthropic API. The whole package is optional: without an API key
// the chat loop prints the formatted answer directly.
package llm

import (
	"context"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// DefaultModel is used when the configuration names none.
const DefaultModel = "claude-sonnet-4-5-20250929"

// DefaultMaxTokens bounds the generated answer.
const DefaultMaxTokens = 1000

// Completer generates an answer from a prompt. The chat loop depends on
// this interface so tests can substitute a fake.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client is a thin wrapper around the Anthropic messages API.
type Client struct {
	api       *anthropic.Client
	model     anthropic.Model
	maxTokens int
}

// New creates a Client. Returns nil when apiKey is empty, which callers
// treat as "LLM mode disabled".
func New(apiKey, model string) *Client {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		api:       anthropic.NewClient(apiKey),
		model:     anthropic.Model(model),
		maxTokens: DefaultMaxTokens,
	}
}

// Complete sends the prompt as a single user message and returns the first
// text block of the response.
func (client *Client) Complete(ctx context.Context, prompt string) (string, error) {
	response, err := client.api.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     client.model,
		MaxTokens: client.maxTokens,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{
				{Type: "text", Text: &prompt},
			}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	for _, block := range response.Content {
		if block.Type == "text" && block.Text != nil {
			return *block.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic response contained no text block")
}
