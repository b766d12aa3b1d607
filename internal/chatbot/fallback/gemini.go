// internal/chatbot/fallback/gemini.go
package fallback

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gear9-chatbot/internal/common/config"
	commonhttp "gear9-chatbot/internal/common/http"
)

// GeminiProvider calls the Gemini generateContent REST endpoint.
type GeminiProvider struct {
	client      *commonhttp.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	topP        float64
	topK        int
}

func NewGemini(cfg config.GenAIConfig, client *commonhttp.Client) *GeminiProvider {
	return &GeminiProvider{
		client:      client,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		topK:        cfg.TopK,
	}
}

func (g *GeminiProvider) Name() string { return "gemini" }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"system_instruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
	TopK        int     `json:"topK"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (g *GeminiProvider) Generate(ctx context.Context, p Prompt) (string, error) {
	if strings.TrimSpace(g.apiKey) == "" {
		return "", fmt.Errorf("%w: missing Gemini API key", ErrProviderNotConfigured)
	}

	req := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: p.UserText()}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature: g.temperature,
			TopP:        g.topP,
			TopK:        g.topK,
		},
	}
	if s := strings.TrimSpace(p.System); s != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: s}}}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrGenAIFailed, err)
	}

	url := g.baseURL + "/v1beta/models/" + g.model + ":generateContent"
	status, respBody, err := g.client.PostJSON(ctx, url, map[string]string{"x-goog-api-key": g.apiKey}, body)
	if err != nil {
		return "", transportError(ctx, err)
	}

	var resp geminiResponse
	decodeErr := json.Unmarshal(respBody, &resp)

	if status < 200 || status > 299 {
		msg := ""
		if decodeErr == nil && resp.Error != nil {
			msg = resp.Error.Message
		}
		return "", classify(status, msg)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrGenAIFailed, decodeErr)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: unexpected response format", ErrGenAIFailed)
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response", ErrGenAIFailed)
	}
	return text, nil
}
