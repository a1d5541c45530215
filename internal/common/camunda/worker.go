package camunda

import (
	"context"
	"fmt"
	"time"

	"fluiq-workers/internal/common/config"
	"fluiq-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler is implemented by every worker handler.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// Workers tracks the job workers opened by StartWorker so they can be closed
// together on shutdown.
type Workers struct {
	client zbc.Client
	logger logger.Logger
	open   map[string]worker.JobWorker
}

func NewWorkers(client zbc.Client, log logger.Logger) *Workers {
	return &Workers{client: client, logger: log, open: make(map[string]worker.JobWorker)}
}

// StartWorker opens a job worker for taskType unless the config disables it.
func (w *Workers) StartWorker(taskType string, wcfg config.WorkerConfig, handler JobHandler) {
	if !wcfg.Enabled {
		w.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return
	}

	w.open[taskType] = w.client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Name(taskType + "-worker").
		Open()

	w.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
}

// TaskTypes lists the task types with an open worker.
func (w *Workers) TaskTypes() []string {
	out := make([]string, 0, len(w.open))
	for t := range w.open {
		out = append(out, t)
	}
	return out
}

// Close stops every job worker and waits for in-flight jobs.
func (w *Workers) Close() {
	for taskType, jw := range w.open {
		w.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
		jw.Close()
		jw.AwaitClose()
	}
	w.open = make(map[string]worker.JobWorker)
}

// CompleteJob completes job with output serialized as its variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	request, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("encode variables for job %d: %w", job.GetKey(), err)
	}
	if _, err := request.Send(ctx); err != nil {
		return fmt.Errorf("complete job %d: %w", job.GetKey(), err)
	}
	return nil
}
