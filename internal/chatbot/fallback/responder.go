// internal/chatbot/fallback/responder.go
package fallback

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"gear9-chatbot/internal/chatbot/language"
	"gear9-chatbot/internal/common/metrics"
)

const cacheKeyPrefix = "chatbot:fallback:"

type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// Cache stores generated replies. *database.RedisClient implements it.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
}

type Options struct {
	SystemPrompt string
	// Timeout bounds one provider call; zero means no extra bound.
	Timeout  time.Duration
	CacheTTL time.Duration
	// RequestsPerMinute caps provider calls; zero disables the limit.
	RequestsPerMinute int
}

var quotaMessages = map[language.Language]string{
	language.English: "I'm currently out of AI requests. You can still ask me about Gear9's address, services, projects, clients, awards, or expertise, and I'll answer from my built-in knowledge.",
	language.French:  "Je n'ai plus de requêtes IA pour le moment. Vous pouvez toujours me demander l'adresse, les services, les projets, les clients, les distinctions ou l'expertise de Gear9, et je répondrai avec mes connaissances intégrées.",
}

// QuotaMessage is the reply given instead of a generated answer when the
// API quota is exhausted.
func QuotaMessage(lang language.Language) string {
	if lang.IsEnglish() {
		return quotaMessages[language.English]
	}
	return quotaMessages[language.French]
}

// Responder wraps a Provider with caching, request coalescing and a rate
// limit. It is safe for concurrent use.
type Responder struct {
	provider Provider
	cache    Cache
	limiter  *rate.Limiter
	group    singleflight.Group
	opts     Options
	log      Logger
}

// NewResponder builds a responder. provider may be nil, in which case every
// Reply fails with ErrProviderNotConfigured; cache may be nil.
func NewResponder(provider Provider, cache Cache, opts Options, log Logger) *Responder {
	r := &Responder{provider: provider, cache: cache, opts: opts, log: log}
	if opts.RequestsPerMinute > 0 {
		r.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), opts.RequestsPerMinute)
	}
	return r
}

// Reply returns generated text for question in lang, grounded on
// grounding when it is not empty. A quota condition yields QuotaMessage
// and a nil error; every other failure is returned.
func (r *Responder) Reply(ctx context.Context, question, grounding string, lang language.Language) (string, error) {
	if r.provider == nil {
		metrics.FallbackFailures.WithLabelValues(reason(ErrProviderNotConfigured)).Inc()
		return "", fmt.Errorf("%w: no provider", ErrProviderNotConfigured)
	}

	prompt := Prompt{
		System:   r.opts.SystemPrompt,
		Language: lang,
		Context:  grounding,
		Question: strings.TrimSpace(question),
	}
	key := r.cacheKey(prompt)

	if text, ok := r.cached(ctx, key); ok {
		return text, nil
	}

	v, err, shared := r.group.Do(key, func() (interface{}, error) {
		return r.generate(ctx, prompt)
	})
	if shared {
		r.log.Debug("Fallback reply shared with a concurrent request", map[string]interface{}{"key": key})
	}
	if err != nil {
		metrics.FallbackFailures.WithLabelValues(reason(err)).Inc()
		if errors.Is(err, ErrQuotaExceeded) {
			r.log.Warn("Generative API quota exhausted", map[string]interface{}{"error": err.Error()})
			return QuotaMessage(lang), nil
		}
		return "", err
	}

	text := v.(string)
	r.store(ctx, key, text)
	return text, nil
}

func (r *Responder) generate(ctx context.Context, p Prompt) (string, error) {
	if r.limiter != nil && !r.limiter.Allow() {
		return "", fmt.Errorf("%w: local rate limit reached", ErrQuotaExceeded)
	}
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	text, err := r.provider.Generate(ctx, p)
	if err != nil {
		return "", err
	}
	if cleaned := cleanResponse(text); cleaned != "" {
		return cleaned, nil
	}
	return strings.TrimSpace(text), nil
}

func (r *Responder) cached(ctx context.Context, key string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	text, found, err := r.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.FallbackCache.WithLabelValues("error").Inc()
		r.log.Warn("Fallback cache read failed", map[string]interface{}{"error": err.Error()})
		return "", false
	case !found:
		metrics.FallbackCache.WithLabelValues("miss").Inc()
		return "", false
	}
	metrics.FallbackCache.WithLabelValues("hit").Inc()
	return text, true
}

func (r *Responder) store(ctx context.Context, key, text string) {
	if r.cache == nil || r.opts.CacheTTL <= 0 {
		return
	}
	if err := r.cache.Set(ctx, key, text, r.opts.CacheTTL); err != nil {
		r.log.Warn("Fallback cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

func (r *Responder) cacheKey(p Prompt) string {
	h := sha256.New()
	for _, part := range []string{r.provider.Name(), p.System, string(p.Language), p.Context, p.Question} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// reason is the metrics label for a fallback failure.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrQuotaExceeded):
		return "quota"
	case errors.Is(err, ErrGenAITimeout):
		return "timeout"
	case errors.Is(err, ErrProviderNotConfigured):
		return "not_configured"
	default:
		return "request_failed"
	}
}
