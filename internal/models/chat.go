// Package models provides adapters for the hosted model APIs: chat
// completion and text embedding. Each adapter has a real implementation and
// a deterministic mock selected once at startup when credentials are
// missing, so the rest of the service never branches on configuration.
package models

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/easeaico/gptamagotchi/internal/config"
	"github.com/easeaico/gptamagotchi/internal/types"
)

// ChatMessage is one role-tagged entry of a completion request.
type ChatMessage struct {
	Role    string
	Content string
}

// Chat maps an ordered list of role-tagged messages to a single reply.
type Chat interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

const (
	chatTemperature = 0.7
	chatMaxTokens   = 1000
)

// openaiChat wraps an OpenAI-compatible chat completion client.
type openaiChat struct {
	client *openai.Client
	model  string
}

// NewChat selects the chat adapter from configuration: the real client when
// an API key is present, the mock otherwise.
func NewChat(cfg config.Config) Chat {
	if cfg.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY not configured, chat completions run in mock mode")
		return &mockChat{}
	}
	return NewOpenAIChat(cfg.OpenAIAPIKey, cfg.ChatBaseURL, cfg.ChatModel)
}

// NewOpenAIChat creates a chat adapter against an OpenAI-compatible host.
// baseURL may be empty for the default OpenAI endpoint.
func NewOpenAIChat(apiKey, baseURL, model string) Chat {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &openaiChat{
		client: &client,
		model:  model,
	}
}

func (c *openaiChat) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    toCompletionMessages(messages),
		Temperature: openai.Float(chatTemperature),
		MaxTokens:   openai.Int(chatMaxTokens),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		slog.Error("failed to call chat completion API", "error", err.Error(), "model", c.model)
		return "", fmt.Errorf("failed to call chat completion API: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

func toCompletionMessages(messages []ChatMessage) []openai.ChatCompletionMessageParamUnion {
	results := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case types.RoleSystem:
			results = append(results, openai.SystemMessage(msg.Content))
		case types.RoleAssistant:
			results = append(results, openai.AssistantMessage(msg.Content))
		default:
			results = append(results, openai.UserMessage(msg.Content))
		}
	}
	return results
}
