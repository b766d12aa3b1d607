// internal/api/handlers.go
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"gear9-chatbot/internal/chatbot/chat"
	"gear9-chatbot/internal/chatbot/language"
	apperrors "gear9-chatbot/internal/common/errors"
	"gear9-chatbot/internal/models"
)

func (s *Server) postChat(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return apperrors.NewInvalidChatRequestError("unreadable body")
	}

	res, err := s.validator.ValidateBytes(body)
	if err != nil {
		return apperrors.NewInvalidChatRequestError("body is not valid JSON")
	}
	if !res.Valid {
		return apperrors.NewInvalidChatRequestError(res.Summary())
	}

	var req models.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.NewInvalidChatRequestError(err.Error())
	}

	reply, err := s.svc.Reply(c.Request().Context(), chat.Request{
		Message:        req.Message,
		ConversationID: req.ConversationID,
		Language:       req.Language,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.ChatResponse{
		Reply:    reply.Text,
		Language: reply.Language.String(),
		Source:   reply.Source,
	})
}

// getSubjects answers in French unless ?language=en.
func (s *Server) getSubjects(c echo.Context) error {
	lang, _ := language.Parse(c.QueryParam("language"))
	return c.JSON(http.StatusOK, s.svc.Subjects(lang.IsEnglish()))
}

func (s *Server) deleteConversation(c echo.Context) error {
	s.svc.Forget(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:        "healthy",
		Version:       s.version,
		KnowledgeBase: s.knowledgeBaseStatus(),
	})
}

// ready fails only when the reply cache is configured and unreachable.
// An empty knowledge base is reported but still serves.
func (s *Server) ready(c echo.Context) error {
	checks := map[string]string{"knowledgeBase": s.knowledgeBaseStatus(), "cache": "disabled"}
	if s.cache != nil {
		if err := s.cache.Ping(c.Request().Context()); err != nil {
			return apperrors.NewCacheUnavailableError(err)
		}
		checks["cache"] = "ok"
	}
	return c.JSON(http.StatusOK, models.HealthResponse{Status: "ready", Version: s.version, Checks: checks})
}

func (s *Server) knowledgeBaseStatus() string {
	kb := s.svc.KnowledgeBase()
	if !kb.Available() {
		return "unavailable"
	}
	return kb.Source
}
