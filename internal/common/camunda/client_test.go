package camunda

import (
	"context"
	"testing"
	"time"

	"gear9-chatbot/internal/common/logger"

	"github.com/stretchr/testify/assert"
)

func TestConnect_RequiresAddress(t *testing.T) {
	_, err := Connect(context.Background(), &ClientConfig{}, logger.NewTestLogger(t))
	assert.ErrorContains(t, err, "gateway address is required")
}

func TestConnect_GivesUpAfterRetries(t *testing.T) {
	cfg := &ClientConfig{
		GatewayAddress:         "127.0.0.1:1",
		UsePlaintextConnection: true,
		ConnectionTimeout:      100 * time.Millisecond,
		RetryConfig: &RetryConfig{
			MaxRetries: 1,
			BaseDelay:  time.Millisecond,
			MaxDelay:   5 * time.Millisecond,
		},
	}

	_, err := Connect(context.Background(), cfg, logger.NewTestLogger(t))
	assert.ErrorContains(t, err, "failed to connect to Zeebe broker at 127.0.0.1:1")
}

func TestConnect_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &ClientConfig{
		GatewayAddress:         "127.0.0.1:1",
		UsePlaintextConnection: true,
		ConnectionTimeout:      50 * time.Millisecond,
		RetryConfig:            &RetryConfig{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: time.Second},
	}

	start := time.Now()
	_, err := Connect(ctx, cfg, logger.NewTestLogger(t))
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
