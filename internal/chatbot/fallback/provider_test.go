package fallback

import (
	"errors"
	"net/http"
	"testing"

	"gear9-chatbot/internal/chatbot/language"
	"gear9-chatbot/internal/common/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt_UserText(t *testing.T) {
	p := Prompt{Language: language.English, Question: "Who are your clients?"}
	assert.Equal(t,
		"Please answer in English only. Do not greet; reply concisely and professionally.\n\nWho are your clients?",
		p.UserText())

	p = Prompt{Language: language.French, Context: "Nom: Gear9", Question: "Vos clients ?"}
	assert.Equal(t,
		"Réponds uniquement en français. Ne salue pas; réponds de manière concise et professionnelle.\n\n"+
			"Context (company data):\nNom: Gear9\n\nQuestion:\nVos clients ?",
		p.UserText())

	assert.Equal(t, directives[language.French], Prompt{}.Directive())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		want    error
	}{
		{"429", http.StatusTooManyRequests, "", ErrQuotaExceeded},
		{"quota wording", http.StatusForbidden, "Quota exceeded for metric", ErrQuotaExceeded},
		{"rate limit wording", http.StatusBadRequest, "Rate limit hit", ErrQuotaExceeded},
		{"plain failure", http.StatusBadRequest, "API key not valid", ErrGenAIFailed},
		{"no message", http.StatusInternalServerError, "", ErrGenAIFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.status, tt.message)
			assert.True(t, errors.Is(err, tt.want), err)
		})
	}
	assert.Contains(t, classify(http.StatusInternalServerError, "").Error(), "status 500 Internal Server Error")
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(config.GenAIConfig{Provider: "gemini", Timeout: 1000})
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())

	p, err = NewProvider(config.GenAIConfig{Provider: "OpenAI", Timeout: 1000})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	_, err = NewProvider(config.GenAIConfig{Provider: "llama"})
	assert.ErrorIs(t, err, ErrProviderNotConfigured)
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bonjour ! Gear9 est basée à Casablanca.", "Gear9 est basée à Casablanca."},
		{"Hello,\n\nGear9 offers Salesforce services.", "Gear9 offers Salesforce services."},
		{"  hi. Gear9 is in Casablanca", "Gear9 is in Casablanca"},
		{"History of Gear9 starts in 2019.", "History of Gear9 starts in 2019."},
		{"Salutations distinguées", "Salutations distinguées"},
		{"Gear9 est une agence.", "Gear9 est une agence."},
		{"Bonjour", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanResponse(tt.in), tt.in)
	}
}
