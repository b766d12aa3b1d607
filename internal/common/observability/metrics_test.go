package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracerRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	obs := New("chatbot-test", nil, WithoutMetrics(), WithSpanProcessor(recorder))
	defer func() { _ = obs.Shutdown(context.Background()) }()

	_, span := obs.Tracer().Start(context.Background(), "chat.reply")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "chat.reply", ended[0].Name())
}

func TestNilObservabilityIsSafe(t *testing.T) {
	var obs *Observability
	ctx := context.Background()

	assert.NotPanics(t, func() {
		obs.RecordReply(ctx, "genai", "en")
		obs.RecordReplyDuration(ctx, time.Millisecond, "genai")
		_, span := obs.Tracer().Start(ctx, "noop")
		span.End()
	})
	assert.NoError(t, obs.Shutdown(ctx))
}

func TestRecordWithoutExporter(t *testing.T) {
	obs := New("chatbot-test", nil, WithoutMetrics())
	assert.NotPanics(t, func() {
		obs.RecordReply(context.Background(), "knowledge_base", "fr")
	})
	assert.NoError(t, obs.Shutdown(context.Background()))
}
