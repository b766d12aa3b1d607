// internal/workers/chatbot/answer-question/handler.go

// Package answerquestion runs the chat pipeline as a Zeebe job worker.
package answerquestion

import (
	"context"
	"fmt"
	"time"

	"gear9-chatbot/internal/chatbot/chat"
	"gear9-chatbot/internal/common/config"
	"gear9-chatbot/internal/common/errors"
	"gear9-chatbot/internal/common/logger"
	"gear9-chatbot/internal/common/metrics"
	"gear9-chatbot/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "answer-company-question"

// Replier is what the worker needs from *chat.Service.
type Replier interface {
	Reply(ctx context.Context, req chat.Request) (chat.Reply, error)
}

type Handler struct {
	config       *Config
	logger       logger.Logger
	service      Replier
	errorHandler *errors.ErrorHandler
	validator    *validation.Validator
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Service      Replier
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Service == nil {
		return nil, fmt.Errorf("%s: chat service is required", TaskType)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json", "stdout")
	}
	validator, err := validation.NewValidator(GetInputSchema())
	if err != nil {
		return nil, err
	}

	return &Handler{
		config:       workerConfig,
		logger:       log.With(map[string]interface{}{"worker": TaskType}),
		service:      opts.Service,
		errorHandler: errors.NewErrorHandler(log),
		validator:    validator,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing chat question", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// Execute answers one question. A failed generative fallback still
// completes with the apology and reports the code in the output.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	reply, err := h.service.Reply(ctx, chat.Request{
		Message:        input.Message,
		ConversationID: input.ConversationID,
		Language:       input.Language,
	})
	if err != nil {
		return nil, err
	}

	out := &Output{
		Reply:    reply.Text,
		Language: reply.Language.String(),
		Source:   reply.Source,
	}
	if reply.FallbackError != nil {
		out.FallbackErrorCode = string(reply.FallbackError.Code)
	}
	return out, nil
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInvalidChatRequestError(fmt.Sprintf("failed to parse job variables: %v", err))
	}

	result, err := h.validator.ValidateInput(variables)
	if err != nil {
		return nil, errors.NewInvalidChatRequestError(err.Error())
	}
	if !result.Valid {
		return nil, errors.NewInvalidChatRequestError(result.Summary())
	}

	input := &Input{Message: variables["message"].(string)}
	if id, ok := variables["conversationId"].(string); ok {
		input.ConversationID = id
	}
	if lang, ok := variables["language"].(string); ok {
		input.Language = lang
	}
	return input, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	request, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromMap(output.ToVariables())
	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	if _, err := request.Send(ctx); err != nil {
		h.logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}
	h.logger.Info("Chat question answered", map[string]interface{}{
		"jobKey":   job.GetKey(),
		"source":   output.Source,
		"language": output.Language,
	})
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := errors.AsStandardError(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, stdErr)
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func (h *Handler) GetConfig() *Config {
	return h.config
}
