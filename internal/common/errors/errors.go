// internal/common/errors/errors.go

// Package errors provides standardized error handling for the HTTP API and
// BPMN workflow integration.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidChatRequest       ErrorCode = "INVALID_CHAT_REQUEST"
	ErrCodeKnowledgeBaseUnavailable ErrorCode = "KNOWLEDGE_BASE_UNAVAILABLE"

	ErrCodeGenAIQuotaExceeded ErrorCode = "GENAI_QUOTA_EXCEEDED"
	ErrCodeGenAITimeout       ErrorCode = "GENAI_TIMEOUT"
	ErrCodeGenAIRequestFailed ErrorCode = "GENAI_REQUEST_FAILED"
	ErrCodeGenAINotConfigured ErrorCode = "GENAI_NOT_CONFIGURED"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata returns e with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func NewInvalidChatRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidChatRequest,
		Message:   "Invalid chat request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewKnowledgeBaseUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeKnowledgeBaseUnavailable,
		Message:   "Knowledge base is not loaded",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewGenAIQuotaExceededError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIQuotaExceeded,
		Message:   "Generative API quota exceeded",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewGenAITimeoutError(timeout time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAITimeout,
		Message:   "Generative API call timed out",
		Details:   fmt.Sprintf("timeout: %s", timeout),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewGenAIRequestFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIRequestFailed,
		Message:   "Generative API request failed",
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewGenAINotConfiguredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAINotConfigured,
		Message:   "Generative API key is not configured",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Reply cache is unavailable",
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal error",
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func errDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ==========================
// 4. Mappings
// ==========================

// BPMNErrorMapping maps internal codes to the error codes modelled on
// BPMN boundary events.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidChatRequest:       "INVALID_CHAT_REQUEST",
	ErrCodeKnowledgeBaseUnavailable: "KNOWLEDGE_BASE_UNAVAILABLE",
	ErrCodeGenAIQuotaExceeded:       "GENAI_QUOTA_EXCEEDED",
	ErrCodeGenAITimeout:             "GENAI_TIMEOUT",
	ErrCodeGenAIRequestFailed:       "GENAI_REQUEST_FAILED",
	ErrCodeGenAINotConfigured:       "GENAI_NOT_CONFIGURED",
	ErrCodeCacheUnavailable:         "CACHE_UNAVAILABLE",
	ErrCodeInternal:                 "INTERNAL_ERROR",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeGenAIRequestFailed,
		ErrCodeCacheUnavailable,
		ErrCodeInternal:
		return 3

	case ErrCodeGenAITimeout:
		return 2

	case ErrCodeGenAIQuotaExceeded:
		return 1

	default:
		return 0 // Business errors: no retry
	}
}

// HTTPStatus maps an error code to the status returned by the API.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidChatRequest:
		return http.StatusBadRequest
	case ErrCodeGenAIQuotaExceeded:
		return http.StatusTooManyRequests
	case ErrCodeGenAITimeout:
		return http.StatusGatewayTimeout
	case ErrCodeGenAIRequestFailed:
		return http.StatusBadGateway
	case ErrCodeKnowledgeBaseUnavailable,
		ErrCodeGenAINotConfigured,
		ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "GENAI"):
		return "AI"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "KNOWLEDGE"):
		return "DATA"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
