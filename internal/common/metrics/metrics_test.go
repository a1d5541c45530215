package metrics

import (
	"fmt"
	"testing"

	"fluiq-workers/internal/common/errors"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	switch {
	case out.Counter != nil:
		return out.GetCounter().GetValue()
	case out.Gauge != nil:
		return out.GetGauge().GetValue()
	}
	t.Fatalf("unsupported metric %v", m.Desc())
	return 0
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "DEAL_NOT_FOUND", ErrorCode(errors.NewDealNotFoundError("d-1")))
	assert.Equal(t, "INTERNAL_ERROR", ErrorCode(fmt.Errorf("boom")))
	assert.Equal(t, "STORAGE_WRITE_FAILED", ErrorCode(fmt.Errorf("wrapped: %w", errors.NewStorageWriteError("k", fmt.Errorf("down")))))
}

func TestJobTimer(t *testing.T) {
	const task = "metrics-test-task"

	StartJob(task).Done(nil)
	StartJob(task).Done(errors.NewUnauthenticatedError("no session"))

	assert.Equal(t, 1.0, value(t, WorkerJobsCompleted.WithLabelValues(task)))
	assert.Equal(t, 1.0, value(t, WorkerJobsFailed.WithLabelValues(task, "UNAUTHENTICATED")))
	assert.Equal(t, 0.0, value(t, WorkerJobsActive.WithLabelValues(task)))
}
