// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"

	"greenbridge-workers/internal/common/metrics"
	"greenbridge-workers/internal/common/observability"
)

// JobHandlerFunc is the signature every task handler exposes.
type JobHandlerFunc func(client worker.JobClient, job entities.Job)

// Worker owns one open Zeebe job subscription.
type Worker struct {
	taskType string
	worker   worker.JobWorker
	logger   *zap.Logger
}

// WorkerOptions bounds a single subscription.
type WorkerOptions struct {
	MaxJobsActive int
	Timeout       time.Duration
	Observer      *observability.Observability
}

func NewWorker(
	client zbc.Client,
	taskType string,
	opts WorkerOptions,
	handler JobHandlerFunc,
	logger *zap.Logger,
) *Worker {
	instrumented := func(client worker.JobClient, job entities.Job) {
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		start := time.Now()

		handler(client, job)

		elapsed := time.Since(start)
		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
		metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()
		metrics.WorkerJobsProcessed.WithLabelValues(taskType).Inc()
		if opts.Observer != nil {
			opts.Observer.RecordJob(context.Background(), taskType, elapsed)
		}
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(instrumented).
		MaxJobsActive(opts.MaxJobsActive).
		Timeout(opts.Timeout).
		Open()

	logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", opts.MaxJobsActive),
		zap.Duration("timeout", opts.Timeout),
	)

	return &Worker{
		taskType: taskType,
		worker:   jobWorker,
		logger:   logger,
	}
}

// Close drains in-flight jobs and stops polling.
func (w *Worker) Close() {
	w.logger.Info("stopping worker", zap.String("taskType", w.taskType))
	w.worker.Close()
	w.worker.AwaitClose()
}
