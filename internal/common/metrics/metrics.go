// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reply sources used as the "source" label.
const (
	SourceKnowledgeBase = "knowledge_base"
	SourceBasic         = "basic"
	SourceGenAI         = "genai"
	SourceApology       = "apology"
)

var (
	RepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_replies_total",
			Help: "Total number of chat replies by source and language",
		},
		[]string{"source", "language"},
	)

	ReplyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatbot_reply_duration_seconds",
			Help:    "Time spent producing a chat reply",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"source"},
	)

	FallbackFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_fallback_failures_total",
			Help: "Generative fallback failures by reason",
		},
		[]string{"reason"},
	)

	ConversationsTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatbot_conversations_tracked",
			Help: "Number of conversations with a remembered language",
		},
	)

	LanguageResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_language_resolutions_total",
			Help: "Language resolutions by resulting language and mode (explicit, sticky, detected)",
		},
		[]string{"language", "mode"},
	)

	FallbackCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_fallback_cache_total",
			Help: "Fallback reply cache lookups by result",
		},
		[]string{"result"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)
)
