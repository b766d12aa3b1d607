// internal/chatbot/fallback/openai.go
package fallback

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"gear9-chatbot/internal/common/config"
)

// OpenAIProvider talks to any OpenAI-compatible chat completions API,
// Gemini's compatibility endpoint included.
type OpenAIProvider struct {
	client      *openai.Client
	apiKey      string
	model       string
	temperature float32
	topP        float32
}

func NewOpenAI(cfg config.GenAIConfig, httpClient *http.Client) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientConfig.HTTPClient = httpClient

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(clientConfig),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		topP:        float32(cfg.TopP),
	}
}

func (o *OpenAIProvider) Name() string { return "openai" }

func (o *OpenAIProvider) Generate(ctx context.Context, p Prompt) (string, error) {
	if strings.TrimSpace(o.apiKey) == "" {
		return "", fmt.Errorf("%w: missing API key", ErrProviderNotConfigured)
	}

	var messages []openai.ChatCompletionMessage
	if s := strings.TrimSpace(p.System); s != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: s})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: p.UserText()})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: o.temperature,
		TopP:        o.topP,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", classify(apiErr.HTTPStatusCode, apiErr.Message)
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			msg := ""
			if reqErr.Err != nil {
				msg = reqErr.Err.Error()
			}
			return "", classify(reqErr.HTTPStatusCode, msg)
		}
		return "", transportError(ctx, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: unexpected response format", ErrGenAIFailed)
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response", ErrGenAIFailed)
	}
	return text, nil
}
