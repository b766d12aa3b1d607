// internal/chatbot/chat/service.go

// Package chat is the reply pipeline shared by the HTTP API, the CLI and
// the Zeebe worker.
package chat

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gear9-chatbot/internal/chatbot/knowledge"
	"gear9-chatbot/internal/chatbot/language"
	"gear9-chatbot/internal/chatbot/matcher"
	apperrors "gear9-chatbot/internal/common/errors"
	"gear9-chatbot/internal/common/metrics"
	"gear9-chatbot/internal/common/observability"
)

type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// LanguageStore resolves and remembers conversation languages.
// *conversation.Store implements it.
type LanguageStore interface {
	Resolve(conversationID, message, explicit string) language.Language
	Forget(conversationID string)
}

// Fallback produces a generated reply. *fallback.Responder implements it.
type Fallback interface {
	Reply(ctx context.Context, question, grounding string, lang language.Language) (string, error)
}

type Request struct {
	Message        string
	ConversationID string
	// Language is an explicit "en" or "fr"; anything else means detect.
	Language string
}

type Reply struct {
	Text     string
	Language language.Language
	// Source is one of the metrics.Source* values.
	Source string
	Topic  string
	// FallbackError is set when the generative fallback failed and Text
	// is the apology.
	FallbackError *apperrors.StandardError
}

// Dependencies wires a Service. Fallback and Observability may be nil.
type Dependencies struct {
	KnowledgeBase *knowledge.KnowledgeBase
	Matcher       *matcher.Matcher
	Languages     LanguageStore
	Fallback      Fallback
	Observability *observability.Observability
	Logger        Logger

	// FallbackTimeout is reported in GENAI_TIMEOUT errors.
	FallbackTimeout time.Duration
}

// Service answers chat messages. It is safe for concurrent use.
type Service struct {
	kb        *knowledge.KnowledgeBase
	matcher   *matcher.Matcher
	languages LanguageStore
	fallback  Fallback
	obs       *observability.Observability
	tracer    trace.Tracer
	log       Logger
	timeout   time.Duration
}

func NewService(deps Dependencies) *Service {
	kb := deps.KnowledgeBase
	if kb == nil {
		kb = knowledge.Empty()
	}
	m := deps.Matcher
	if m == nil {
		m = matcher.New(kb, nil)
	}
	return &Service{
		kb:        kb,
		matcher:   m,
		languages: deps.Languages,
		fallback:  deps.Fallback,
		obs:       deps.Observability,
		tracer:    deps.Observability.Tracer(),
		log:       deps.Logger,
		timeout:   deps.FallbackTimeout,
	}
}

// Reply answers req. Deterministic matching always runs before any
// network call. The only error is a blank message.
func (s *Service) Reply(ctx context.Context, req Request) (Reply, error) {
	if strings.TrimSpace(req.Message) == "" {
		return Reply{}, apperrors.NewInvalidChatRequestError("message is required")
	}

	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "chat.reply")
	defer span.End()

	lang := s.languages.Resolve(req.ConversationID, req.Message, req.Language)
	english := lang.IsEnglish()

	reply := s.answer(ctx, span, req.Message, lang)
	reply.Language = lang

	elapsed := time.Since(start)
	metrics.RepliesTotal.WithLabelValues(reply.Source, lang.String()).Inc()
	metrics.ReplyDuration.WithLabelValues(reply.Source).Observe(elapsed.Seconds())
	s.obs.RecordReply(ctx, reply.Source, lang.String())
	s.obs.RecordReplyDuration(ctx, elapsed, reply.Source)

	span.SetAttributes(
		attribute.String("chat.language", lang.String()),
		attribute.Bool("chat.english", english),
		attribute.String("chat.source", reply.Source),
		attribute.String("chat.topic", reply.Topic),
	)
	s.log.Debug("Chat reply produced", map[string]interface{}{
		"conversationId": req.ConversationID,
		"language":       lang.String(),
		"source":         reply.Source,
		"topic":          reply.Topic,
		"durationMs":     elapsed.Milliseconds(),
	})
	return reply, nil
}

func (s *Service) answer(ctx context.Context, span trace.Span, message string, lang language.Language) Reply {
	english := lang.IsEnglish()

	res := s.matcher.Match(message, english)
	if res.Matched {
		return Reply{Text: res.Text, Source: metrics.SourceKnowledgeBase, Topic: res.Topic}
	}

	if text, ok := basicAnswer(message, english, s.kb); ok {
		return Reply{Text: text, Source: metrics.SourceBasic, Topic: res.Topic}
	}

	if s.fallback == nil {
		return Reply{Text: Apology(english), Source: metrics.SourceApology, Topic: res.Topic}
	}

	text, err := s.fallback.Reply(ctx, message, s.kb.BuildContext(message), lang)
	if err != nil {
		stdErr := fallbackError(err, s.timeout)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(stdErr.Code))
		s.log.Warn("Generative fallback failed", map[string]interface{}{
			"error":     err.Error(),
			"errorCode": string(stdErr.Code),
			"language":  lang.String(),
		})
		return Reply{Text: Apology(english), Source: metrics.SourceApology, Topic: res.Topic, FallbackError: stdErr}
	}
	return Reply{Text: text, Source: metrics.SourceGenAI, Topic: res.Topic}
}

// Subjects lists the knowledge base labels for autocomplete.
func (s *Service) Subjects(english bool) []string {
	return s.kb.SubjectLabels(english)
}

// Forget clears the remembered language of a conversation.
func (s *Service) Forget(conversationID string) {
	s.languages.Forget(conversationID)
}

// KnowledgeBase returns the knowledge base the service answers from.
func (s *Service) KnowledgeBase() *knowledge.KnowledgeBase {
	return s.kb
}
