package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gear9-chatbot/internal/chatbot/chat"
	"gear9-chatbot/internal/chatbot/conversation"
	"gear9-chatbot/internal/chatbot/knowledge"
	"gear9-chatbot/internal/chatbot/language"
	"gear9-chatbot/internal/chatbot/matcher"
	apperrors "gear9-chatbot/internal/common/errors"
	"gear9-chatbot/internal/common/logger"
	"gear9-chatbot/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type fixedFallback struct{ text string }

func (f fixedFallback) Reply(context.Context, string, string, language.Language) (string, error) {
	return f.text, nil
}

func newTestServer(t *testing.T, cache Pinger) *Server {
	t.Helper()
	kb, err := knowledge.LoadBytes(knowledge.Bundled(), knowledge.BundledSource)
	require.NoError(t, err)

	detector := language.NewDetector(language.WeightedTable)
	svc := chat.NewService(chat.Dependencies{
		KnowledgeBase: kb,
		Matcher:       matcher.New(kb, detector),
		Languages:     conversation.NewStore(detector, nil),
		Fallback:      fixedFallback{text: "generated"},
		Logger:        logger.NewTestLogger(t),
	})
	return NewServer(Options{
		Service:        svc,
		Cache:          cache,
		AllowedOrigins: []string{"http://localhost:5173"},
		Version:        "test",
		Logger:         logger.NewTestLogger(t),
	})
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeChat(t *testing.T, rec *httptest.ResponseRecorder) models.ChatResponse {
	t.Helper()
	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestPostChat(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/api/chat", `{"message":"What is the address of Gear9?","language":"en"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	resp := decodeChat(t, rec)
	assert.Equal(t, "en", resp.Language)
	assert.Equal(t, "knowledge_base", resp.Source)
	assert.Contains(t, resp.Reply, "219 Bd Zerktouni")

	rec = do(t, s, http.MethodPost, "/api/chat", `{"message":"Can you recommend a good restaurant in Casablanca?","language":"en"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeChat(t, rec)
	assert.Equal(t, "genai", resp.Source)
	assert.Equal(t, "generated", resp.Reply)
}

func TestPostChat_InvalidBodies(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"blank message", `{"message":"   "}`},
		{"wrong type", `{"message":5}`},
		{"not json", `message=hello`},
		{"empty body", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var stdErr apperrors.StandardError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stdErr))
			assert.Equal(t, apperrors.ErrCodeInvalidChatRequest, stdErr.Code)
		})
	}
}

func TestGetSubjects(t *testing.T) {
	s := newTestServer(t, nil)

	var fr []string
	rec := do(t, s, http.MethodGet, "/api/chat/subjects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fr))
	assert.Contains(t, fr, "Adresse")
	assert.Contains(t, fr, "À propos")

	var en []string
	rec = do(t, s, http.MethodGet, "/api/chat/subjects?language=en", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &en))
	assert.Contains(t, en, "Address")
	assert.Contains(t, en, "About")
}

func TestDeleteConversation(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/api/chat", `{"message":"bonjour","conversationId":"c-del","language":"en"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/chat", `{"message":"Quelle est l'adresse de Gear9 ?","conversationId":"c-del"}`)
	assert.Equal(t, "en", decodeChat(t, rec).Language)

	rec = do(t, s, http.MethodDelete, "/api/chat/conversations/c-del", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/chat", `{"message":"Quelle est l'adresse de Gear9 ?","conversationId":"c-del"}`)
	assert.Equal(t, "fr", decodeChat(t, rec).Language)
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var health models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, knowledge.BundledSource, health.KnowledgeBase)

	rec = do(t, s, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ready models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ready))
	assert.Equal(t, "disabled", ready.Checks["cache"])

	rec = do(t, newTestServer(t, fakePinger{}), http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cache":"ok"`)

	rec = do(t, newTestServer(t, fakePinger{err: errors.New("connection refused")}), http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var stdErr apperrors.StandardError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stdErr))
	assert.Equal(t, apperrors.ErrCodeCacheUnavailable, stdErr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	do(t, s, http.MethodPost, "/api/chat", `{"message":"What is the address of Gear9?","language":"en"}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chatbot_replies_total")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestUnknownRoute(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
