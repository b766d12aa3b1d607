// internal/app/app.go

// Package app assembles the chatbot from configuration. Every command of
// cmd/chatbot builds one App.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"gear9-chatbot/internal/api"
	"gear9-chatbot/internal/chatbot/chat"
	"gear9-chatbot/internal/chatbot/conversation"
	"gear9-chatbot/internal/chatbot/fallback"
	"gear9-chatbot/internal/chatbot/knowledge"
	"gear9-chatbot/internal/chatbot/language"
	"gear9-chatbot/internal/chatbot/matcher"
	"gear9-chatbot/internal/common/camunda"
	"gear9-chatbot/internal/common/config"
	"gear9-chatbot/internal/common/database"
	"gear9-chatbot/internal/common/logger"
	"gear9-chatbot/internal/common/observability"
	answerquestion "gear9-chatbot/internal/workers/chatbot/answer-question"
)

type App struct {
	Config        *config.Config
	Logger        logger.Logger
	KnowledgeBase *knowledge.KnowledgeBase
	Service       *chat.Service

	cache *database.RedisClient
	obs   *observability.Observability
}

// Option customises New.
type Option func(*options)

type options struct {
	fallback chat.Fallback
	obs      *observability.Observability
}

// WithFallback replaces the configured generative provider.
func WithFallback(f chat.Fallback) Option {
	return func(o *options) { o.fallback = f }
}

// WithObservability uses obs instead of building one with a prometheus
// exporter.
func WithObservability(obs *observability.Observability) Option {
	return func(o *options) { o.obs = obs }
}

func New(cfg *config.Config, log logger.Logger, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	detector, err := language.ForName(cfg.Language.Detector)
	if err != nil {
		return nil, err
	}

	kb := knowledge.Load(cfg.KnowledgeBase.Paths, cfg.KnowledgeBase.SkipBundled, log)

	a := &App{Config: cfg, Logger: log, KnowledgeBase: kb, obs: o.obs}
	if a.obs == nil {
		a.obs = observability.New(cfg.App.Name, log)
	}

	fb := o.fallback
	if fb == nil {
		fb, err = a.newResponder()
		if err != nil {
			_ = a.Close()
			return nil, err
		}
	}

	a.Service = chat.NewService(chat.Dependencies{
		KnowledgeBase:   kb,
		Matcher:         matcher.New(kb, detector),
		Languages:       conversation.NewStore(detector, conversation.PrometheusObserver{}),
		Fallback:        fb,
		Observability:   a.obs,
		Logger:          log,
		FallbackTimeout: config.GetDuration(cfg.GenAI.Timeout),
	})
	return a, nil
}

func (a *App) newResponder() (*fallback.Responder, error) {
	cfg := a.Config
	provider, err := fallback.NewProvider(cfg.GenAI)
	if err != nil {
		return nil, err
	}
	if cfg.GenAI.APIKey == "" {
		a.Logger.Warn("No generative API key configured, unmatched questions get the apology", map[string]interface{}{
			"provider": provider.Name(),
		})
	}

	var cache fallback.Cache
	if cfg.Cache.Enabled {
		a.cache, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return nil, fmt.Errorf("reply cache: %w", err)
		}
		cache = a.cache
	}

	return fallback.NewResponder(provider, cache, fallback.Options{
		SystemPrompt:      cfg.GenAI.SystemPrompt,
		Timeout:           config.GetDuration(cfg.GenAI.Timeout),
		CacheTTL:          config.GetDuration(cfg.Cache.TTL),
		RequestsPerMinute: cfg.GenAI.RequestsPerMinute,
	}, a.Logger), nil
}

// Server builds the HTTP API.
func (a *App) Server() *api.Server {
	opts := api.Options{
		Service:        a.Service,
		AllowedOrigins: a.Config.Server.AllowedOrigins,
		Version:        a.Config.App.Version,
		ReadTimeout:    config.GetDuration(a.Config.Server.ReadTimeout),
		WriteTimeout:   config.GetDuration(a.Config.Server.WriteTimeout),
		Logger:         a.Logger,
	}
	if a.cache != nil {
		opts.Cache = a.cache
	}
	return api.NewServer(opts)
}

// Worker is a running answer-company-question job worker.
type Worker struct {
	client    zbc.Client
	jobWorker worker.JobWorker
}

func (w *Worker) Close() error {
	if w.jobWorker != nil {
		w.jobWorker.Close()
	}
	return w.client.Close()
}

// StartWorker connects to Zeebe and opens the job worker. It returns
// nil, nil when the worker is disabled in configuration.
func (a *App) StartWorker(ctx context.Context) (*Worker, error) {
	handler, err := answerquestion.NewHandler(answerquestion.HandlerOptions{
		AppConfig: a.Config,
		Service:   a.Service,
		Logger:    a.Logger,
	})
	if err != nil {
		return nil, err
	}
	if !handler.IsEnabled() {
		a.Logger.Info("Worker disabled by configuration", map[string]interface{}{"worker": answerquestion.TaskType})
		return nil, nil
	}

	client, err := camunda.Connect(ctx, &camunda.ClientConfig{
		GatewayAddress:         a.Config.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(a.Config.Camunda.RequestTimeout),
	}, a.Logger)
	if err != nil {
		return nil, err
	}

	wcfg := config.GetWorkerConfig(a.Config, answerquestion.TaskType)
	return &Worker{
		client:    client,
		jobWorker: camunda.StartWorker(client, answerquestion.TaskType, wcfg, handler.Handle, a.Logger),
	}, nil
}

// Close releases the cache connection and flushes telemetry.
func (a *App) Close() error {
	var errs []error
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errs = append(errs, a.obs.Shutdown(ctx))
	return errors.Join(errs...)
}
