// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler fails or throws Zeebe jobs from a StandardError.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// jobAction is what the handler does with a failed job.
type jobAction int

const (
	actionFail jobAction = iota
	actionThrow
)

// HandleJobError reports err for job. Retryable errors fail the job with
// a decremented retry budget; everything else is thrown as a BPMN error so
// the process can route it through a boundary event.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := AsStandardError(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	action, retries := decide(stdErr, job.Retries)
	h.logError(job, stdErr, bpmnErr, action)

	varsJSON, _ := json.Marshal(bpmnErr.ToErrorVariables())

	switch action {
	case actionFail:
		cmd := client.NewFailJobCommand().
			JobKey(job.Key).
			Retries(retries).
			ErrorMessage(bpmnErr.Message)
		if withVars, vErr := cmd.VariablesFromString(string(varsJSON)); vErr == nil {
			_, _ = withVars.Send(ctx)
			return
		}
		_, _ = cmd.Send(ctx)
	default:
		cmd := client.NewThrowErrorCommand().
			JobKey(job.Key).
			ErrorCode(bpmnErr.Code).
			ErrorMessage(bpmnErr.Message)
		if withVars, vErr := cmd.VariablesFromString(string(varsJSON)); vErr == nil {
			_, _ = withVars.Send(ctx)
			return
		}
		_, _ = cmd.Send(ctx)
	}
}

// decide picks fail-with-retries or throw. The remaining retries never
// exceed what the code allows nor what the job still has.
func decide(stdErr *StandardError, jobRetries int32) (jobAction, int32) {
	allowed := int32(GetRetryCount(stdErr.Code))
	if !stdErr.Retryable || allowed == 0 || jobRetries <= 1 {
		return actionThrow, 0
	}
	remaining := jobRetries - 1
	if remaining > allowed {
		remaining = allowed
	}
	return actionFail, remaining
}

// AsStandardError unwraps err to a StandardError, wrapping foreign errors
// as INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	internal := NewInternalError(err)
	internal.Retryable = false
	return internal
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError, action jobAction) {
	outcome := "fail"
	if action == actionThrow {
		outcome = "throw"
	}
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    bpmnErr.Code,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"outcome":          outcome,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
