package sessionopen

import (
	"context"
	"encoding/json"
	"fmt"

	"fluiq-workers/internal/common/camunda"
	"fluiq-workers/internal/common/config"
	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/common/metrics"
	"fluiq-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "session-open"

type Handler struct {
	config       *Config
	logger       logger.Logger
	service      ServiceInterface
	errorHandler *errors.ErrorHandler
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Dependencies ServiceDependencies
	Service      ServiceInterface
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}

	service := opts.Service
	if service == nil {
		deps := opts.Dependencies
		deps.Logger = log
		service = NewService(deps, workerConfig)
	}

	return &Handler{
		config:       workerConfig,
		logger:       log,
		service:      service,
		errorHandler: errors.NewErrorHandler(log),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := metrics.StartJob(TaskType)
	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	log := logger.ForJob(h.logger, job.GetKey(), TaskType, "")
	log.Info("Processing session open", map[string]interface{}{
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	output, err := h.process(ctx, job)
	timer.Done(err)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		log.Error("Failed to complete job", map[string]interface{}{"error": err.Error()})
		return
	}
	log.Info("Session opened", map[string]interface{}{"expiresAt": output.ExpiresAt})
}

// process turns a panic anywhere below it into an internal error so Handle
// fails the job instead of taking the worker down.
func (h *Handler) process(ctx context.Context, job entities.Job) (output *Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewPanicError(r)
		}
	}()

	input, err := h.parseInput(job)
	if err != nil {
		return nil, err
	}
	return h.Execute(ctx, input)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables := job.GetVariables()
	if err := validation.Check(variables, GetInputSchema()); err != nil {
		return nil, err
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return &input, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.service.Execute(ctx, input)
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
