// internal/api/server.go

// Package api exposes the chat service over HTTP with echo.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gear9-chatbot/internal/chatbot/chat"
	"gear9-chatbot/internal/chatbot/knowledge"
	apperrors "gear9-chatbot/internal/common/errors"
	"gear9-chatbot/internal/common/validation"
)

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// ChatService is what the API needs from *chat.Service.
type ChatService interface {
	Reply(ctx context.Context, req chat.Request) (chat.Reply, error)
	Subjects(english bool) []string
	Forget(conversationID string)
	KnowledgeBase() *knowledge.KnowledgeBase
}

// Pinger is checked by /ready. *database.RedisClient implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Service        ChatService
	Cache          Pinger
	AllowedOrigins []string
	Version        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Logger         Logger
}

type Server struct {
	echo      *echo.Echo
	svc       ChatService
	cache     Pinger
	version   string
	validator *validation.Validator
	log       Logger
}

func NewServer(opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = opts.ReadTimeout
	e.Server.WriteTimeout = opts.WriteTimeout

	s := &Server{
		echo:      e,
		svc:       opts.Service,
		cache:     opts.Cache,
		version:   opts.Version,
		validator: validation.MustValidator(validation.ChatRequestSchema),
		log:       opts.Logger,
	}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.Info("HTTP request", map[string]interface{}{
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
				"latencyMs": v.Latency.Milliseconds(),
				"requestId": v.RequestID,
			})
			return nil
		},
	}))

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderXRequestID},
	}))

	s.routes()
	return s
}

func (s *Server) routes() {
	g := s.echo.Group("/api/chat")
	g.POST("", s.postChat, middleware.BodyLimit("64K"))
	g.GET("/subjects", s.getSubjects)
	g.DELETE("/conversations/:id", s.deleteConversation)

	s.echo.GET("/health", s.health)
	s.echo.GET("/ready", s.ready)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown. It returns nil after a clean
// shutdown.
func (s *Server) Start(addr string) error {
	s.log.Info("HTTP server listening", map[string]interface{}{"address": addr})
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// handleError renders StandardError values with their mapped status and
// echo errors as INVALID_CHAT_REQUEST or INTERNAL_ERROR bodies.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var stdErr *apperrors.StandardError
	status := http.StatusInternalServerError

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &stdErr):
		status = apperrors.HTTPStatus(stdErr.Code)
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if status < http.StatusInternalServerError {
			stdErr = apperrors.NewInvalidChatRequestError(http.StatusText(status))
		} else {
			stdErr = apperrors.NewInternalError(err)
		}
	default:
		stdErr = apperrors.NewInternalError(err)
	}

	if status >= http.StatusInternalServerError {
		s.log.Error("Request failed", map[string]interface{}{
			"path":      c.Path(),
			"errorCode": string(stdErr.Code),
			"error":     err.Error(),
		})
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, stdErr)
	}
	if err != nil {
		s.log.Warn("Failed to write error response", map[string]interface{}{"error": err.Error()})
	}
}
