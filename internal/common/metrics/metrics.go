package metrics

import (
	"time"

	"fluiq-workers/internal/common/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
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

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	CaptionsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "captions_generated_total",
			Help: "Captions generated, by the fallback level that produced the candidates",
		},
		[]string{"match_level"},
	)

	DealMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deal_mutations_total",
			Help: "Deal ledger mutations by operation and outcome",
		},
		[]string{"op", "result"},
	)

	SessionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_events_total",
			Help: "Session open/close events published",
		},
		[]string{"type"},
	)

	CorpusRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "corpus_records",
			Help: "Records loaded per static corpus",
		},
		[]string{"corpus"},
	)
)

// ErrorCode extracts the label used for WorkerJobsFailed.
func ErrorCode(err error) string {
	if stdErr, ok := errors.AsStandardError(err); ok {
		return string(stdErr.Code)
	}
	return string(errors.ErrCodeInternal)
}

// JobTimer tracks one job from activation to completion or failure.
type JobTimer struct {
	taskType string
	start    time.Time
}

func StartJob(taskType string) *JobTimer {
	WorkerJobsActive.WithLabelValues(taskType).Inc()
	return &JobTimer{taskType: taskType, start: time.Now()}
}

// Done records the outcome. err == nil counts as completed.
func (j *JobTimer) Done(err error) {
	WorkerJobsActive.WithLabelValues(j.taskType).Dec()
	WorkerJobDuration.WithLabelValues(j.taskType).Observe(time.Since(j.start).Seconds())
	if err != nil {
		WorkerJobsFailed.WithLabelValues(j.taskType, ErrorCode(err)).Inc()
		return
	}
	WorkerJobsCompleted.WithLabelValues(j.taskType).Inc()
}
