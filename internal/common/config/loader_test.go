package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	path := writeConfig(t, "app:\n  name: chatbot-test\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "chatbot-test", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, []string{"data.json"}, cfg.KnowledgeBase.Paths)
	assert.Equal(t, "weighted", cfg.Language.Detector)
	assert.Equal(t, "gemini", cfg.GenAI.Provider)
	assert.Equal(t, "gemini-1.5-flash", cfg.GenAI.Model)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.GenAI.BaseURL)
	assert.Equal(t, DefaultSystemPrompt, cfg.GenAI.SystemPrompt)
	assert.InDelta(t, 0.6, cfg.GenAI.Temperature, 1e-9)
	assert.InDelta(t, 0.9, cfg.GenAI.TopP, 1e-9)
	assert.Equal(t, 40, cfg.GenAI.TopK)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.GenAI.APIKey)
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "from-env")
	t.Setenv("LANGUAGE_DETECTOR", "keyword-count")
	t.Setenv("MY_REDIS", "localhost:6390")
	path := writeConfig(t, `
cache:
  enabled: true
database:
  redis:
    address: ${MY_REDIS}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.GenAI.APIKey)
	assert.Equal(t, "keyword-count", cfg.Language.Detector)
	assert.Equal(t, "localhost:6390", cfg.Database.Redis.Address)
}

func TestLoadFromFile_GeminiKeyFallback(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	cfg, err := LoadFromFile(writeConfig(t, "genai:\n  provider: gemini\n"))
	require.NoError(t, err)
	assert.Equal(t, "gemini-key", cfg.GenAI.APIKey)
}

func TestLoadFromFile_OpenAIDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "genai:\n  provider: OpenAI\n"))
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.GenAI.Provider)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/openai", cfg.GenAI.BaseURL)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown provider", "genai:\n  provider: claude\n", "genai.provider"},
		{"unknown detector", "language:\n  detector: bayes\n", "language.detector"},
		{"cache without redis", "cache:\n  enabled: true\n", "database.redis.address"},
		{"camunda without broker", "camunda:\n  enabled: true\n", "camunda.broker_address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWorkerHelpers(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"answer-company-question": {Enabled: false, MaxJobsActive: 2, Timeout: 1000},
	}}

	assert.False(t, IsWorkerEnabled(cfg, "answer-company-question"))
	assert.True(t, IsWorkerEnabled(cfg, "other"))
	assert.Equal(t, 2, GetWorkerConfig(cfg, "answer-company-question").MaxJobsActive)
	assert.Equal(t, 5, GetWorkerConfig(cfg, "other").MaxJobsActive)
	assert.Equal(t, time.Second, GetDuration(1000))
}
