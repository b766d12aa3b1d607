// internal/chatbot/conversation/observer.go
package conversation

import (
	"gear9-chatbot/internal/chatbot/language"
	"gear9-chatbot/internal/common/metrics"
)

// PrometheusObserver feeds chatbot_language_resolutions_total and
// chatbot_conversations_tracked.
type PrometheusObserver struct{}

func (PrometheusObserver) Resolved(lang language.Language, mode string) {
	metrics.LanguageResolutions.WithLabelValues(string(lang), mode).Inc()
}

func (PrometheusObserver) Tracked(count int64) {
	metrics.ConversationsTracked.Set(float64(count))
}
