// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gear9-chatbot/internal/app"
	"gear9-chatbot/internal/common/config"
	"gear9-chatbot/internal/common/logger"
	"gear9-chatbot/internal/common/observability"
	"gear9-chatbot/internal/models"
	answerquestion "gear9-chatbot/internal/workers/chatbot/answer-question"
)

// fakeGemini answers every generateContent call and counts them.
func fakeGemini(t *testing.T, text string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []interface{}{
				map[string]interface{}{"content": map[string]interface{}{
					"parts": []interface{}{map[string]interface{}{"text": text}},
				}},
			},
		})
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func newConfig(genaiURL, redisAddr string) *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "gear9-chatbot-e2e", Version: "e2e"},
		Server:   config.ServerConfig{Address: ":0", AllowedOrigins: []string{"*"}},
		Language: config.LanguageConfig{Detector: "weighted"},
		GenAI: config.GenAIConfig{
			Provider:     "gemini",
			BaseURL:      genaiURL,
			APIKey:       "e2e-key",
			Model:        "gemini-1.5-flash",
			Timeout:      2000,
			SystemPrompt: config.DefaultSystemPrompt,
		},
		Cache:    config.CacheConfig{Enabled: true, TTL: 60000},
		Database: config.DatabaseConfig{Redis: config.RedisConfig{Address: redisAddr}},
		Workers:  map[string]config.WorkerConfig{},
	}
}

func startApp(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	a, err := app.New(cfg, logger.NewTestLogger(t),
		app.WithObservability(observability.New("e2e", nil, observability.WithoutMetrics())))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	server := httptest.NewServer(a.Server().Handler())
	t.Cleanup(server.Close)
	return server
}

func chat(t *testing.T, baseURL string, req models.ChatRequest) models.ChatResponse {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	resp, err := http.Post(baseURL+"/api/chat", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestChatFlow(t *testing.T) {
	mr := miniredis.RunT(t)
	gemini, calls := fakeGemini(t, "Hello! Gear9 does not review restaurants, but our Casablanca office is central.")
	server := startApp(t, newConfig(gemini.URL, mr.Addr()))

	t.Run("knowledge base answer", func(t *testing.T) {
		got := chat(t, server.URL, models.ChatRequest{Message: "Quelle est l'adresse de Gear9 ?", ConversationID: "e2e-1"})
		assert.Equal(t, "fr", got.Language)
		assert.Equal(t, "knowledge_base", got.Source)
		assert.Contains(t, got.Reply, "219 Bd Zerktouni")
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("explicit language sticks to the conversation", func(t *testing.T) {
		got := chat(t, server.URL, models.ChatRequest{Message: "bonjour", ConversationID: "e2e-2", Language: "en"})
		assert.Equal(t, "en", got.Language)

		got = chat(t, server.URL, models.ChatRequest{Message: "Quelle est l'adresse ?", ConversationID: "e2e-2"})
		assert.Equal(t, "en", got.Language)
		assert.Contains(t, got.Reply, "219 Bd Zerktouni")
	})

	t.Run("generated answer is cleaned and cached", func(t *testing.T) {
		req := models.ChatRequest{Message: "Can you recommend a good restaurant in Casablanca?", Language: "en"}

		first := chat(t, server.URL, req)
		assert.Equal(t, "genai", first.Source)
		assert.Equal(t, "Gear9 does not review restaurants, but our Casablanca office is central.", first.Reply)

		second := chat(t, server.URL, req)
		assert.Equal(t, first.Reply, second.Reply)
		assert.Equal(t, int32(1), calls.Load())
		assert.NotEmpty(t, mr.Keys())
	})

	t.Run("forget conversation", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/chat/conversations/e2e-2", nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		got := chat(t, server.URL, models.ChatRequest{Message: "Quelle est l'adresse ?", ConversationID: "e2e-2"})
		assert.Equal(t, "fr", got.Language)
	})

	t.Run("ready reports the cache", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/ready")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var health models.HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
		assert.Equal(t, "ok", health.Checks["cache"])

		mr.Close()
		resp2, err := http.Get(server.URL + "/ready")
		require.NoError(t, err)
		resp2.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp2.StatusCode)
	})
}

func TestChatFlow_ProviderDown(t *testing.T) {
	mr := miniredis.RunT(t)
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"backend unavailable"}}`, http.StatusBadGateway)
	}))
	t.Cleanup(down.Close)

	server := startApp(t, newConfig(down.URL, mr.Addr()))

	got := chat(t, server.URL, models.ChatRequest{Message: "Can you recommend a good restaurant in Casablanca?", Language: "en"})
	assert.Equal(t, "apology", got.Source)
	assert.Empty(t, mr.Keys())
}

// TestWorker_Zeebe needs a running gateway, e.g. ZEEBE_ADDRESS=localhost:26500.
// The process definition is not deployed here; the test only checks the
// worker connects and closes cleanly.
func TestWorker_Zeebe(t *testing.T) {
	addr := os.Getenv("ZEEBE_ADDRESS")
	if addr == "" {
		t.Skip("ZEEBE_ADDRESS not set")
	}

	client, err := zbc.NewClient(&zbc.ClientConfig{GatewayAddress: addr, UsePlaintextConnection: true})
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = client.NewTopologyCommand().Send(ctx)
	require.NoError(t, err, "gateway at %s not reachable", addr)

	cfg := newConfig("http://127.0.0.1:1", "")
	cfg.Cache.Enabled = false
	cfg.Camunda = config.CamundaConfig{Enabled: true, BrokerAddress: addr, RequestTimeout: 10000}
	cfg.Workers[answerquestion.TaskType] = config.WorkerConfig{Enabled: true, MaxJobsActive: 1, Timeout: 5000, MaxRetries: 1}

	a, err := app.New(cfg, logger.NewTestLogger(t),
		app.WithObservability(observability.New("e2e-worker", nil, observability.WithoutMetrics())))
	require.NoError(t, err)
	defer a.Close()

	w, err := a.StartWorker(ctx)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.NoError(t, w.Close())
}
