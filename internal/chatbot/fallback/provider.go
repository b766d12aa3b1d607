// internal/chatbot/fallback/provider.go

// Package fallback asks a generative language API when the deterministic
// matcher has no answer.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"gear9-chatbot/internal/chatbot/language"
	"gear9-chatbot/internal/common/config"
	commonhttp "gear9-chatbot/internal/common/http"
)

var (
	ErrGenAIFailed           = errors.New("GENAI_REQUEST_FAILED")
	ErrGenAITimeout          = errors.New("GENAI_TIMEOUT")
	ErrProviderNotConfigured = errors.New("GENAI_NOT_CONFIGURED")
	// ErrQuotaExceeded never leaves the Responder, which turns it into a
	// friendly reply.
	ErrQuotaExceeded = errors.New("GENAI_QUOTA_EXCEEDED")
)

// Prompt is one generation request.
type Prompt struct {
	System   string
	Language language.Language
	Context  string
	Question string
}

var directives = map[language.Language]string{
	language.English: "Please answer in English only. Do not greet; reply concisely and professionally.",
	language.French:  "Réponds uniquement en français. Ne salue pas; réponds de manière concise et professionnelle.",
}

// Directive is the language instruction placed before the question.
func (p Prompt) Directive() string {
	if d, ok := directives[p.Language]; ok {
		return d
	}
	return directives[language.French]
}

// UserText renders the user turn: directive, optional grounding context,
// then the question.
func (p Prompt) UserText() string {
	if strings.TrimSpace(p.Context) == "" {
		return p.Directive() + "\n\n" + p.Question
	}
	return p.Directive() + "\n\nContext (company data):\n" + p.Context + "\n\nQuestion:\n" + p.Question
}

// Provider generates text for a prompt. Implementations return errors
// wrapping one of the package sentinels.
type Provider interface {
	Name() string
	Generate(ctx context.Context, p Prompt) (string, error)
}

// NewProvider builds the provider named by cfg.Provider.
func NewProvider(cfg config.GenAIConfig) (Provider, error) {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	switch strings.ToLower(cfg.Provider) {
	case "", "gemini":
		return NewGemini(cfg, commonhttp.NewClient(timeout, cfg.MaxRetries)), nil
	case "openai":
		return NewOpenAI(cfg, &http.Client{Timeout: timeout}), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrProviderNotConfigured, cfg.Provider)
	}
}

// classify maps an API failure to a sentinel. Quota is recognised from
// HTTP 429 or from the wording of the message.
func classify(status int, message string) error {
	if isQuota(status, message) {
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, describe(status, message))
	}
	return fmt.Errorf("%w: %s", ErrGenAIFailed, describe(status, message))
}

func isQuota(status int, message string) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	m := strings.ToLower(message)
	return strings.Contains(m, "quota") || strings.Contains(m, "rate limit") || strings.Contains(m, "exceeded")
}

func describe(status int, message string) string {
	if message = strings.TrimSpace(message); message != "" {
		return message
	}
	return fmt.Sprintf("status %d %s", status, http.StatusText(status))
}

// transportError maps a failure to reach the API.
func transportError(ctx context.Context, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrGenAITimeout, err)
	}
	return fmt.Errorf("%w: unable to reach service: %v", ErrGenAIFailed, err)
}
