// internal/chatbot/chat/errors.go
package chat

import (
	"errors"
	"time"

	"gear9-chatbot/internal/chatbot/fallback"
	apperrors "gear9-chatbot/internal/common/errors"
)

// fallbackError maps a fallback failure to its StandardError code.
func fallbackError(err error, timeout time.Duration) *apperrors.StandardError {
	switch {
	case errors.Is(err, fallback.ErrGenAITimeout):
		return apperrors.NewGenAITimeoutError(timeout)
	case errors.Is(err, fallback.ErrProviderNotConfigured):
		return apperrors.NewGenAINotConfiguredError()
	case errors.Is(err, fallback.ErrQuotaExceeded):
		return apperrors.NewGenAIQuotaExceededError(err.Error())
	default:
		return apperrors.NewGenAIRequestFailedError(err)
	}
}
