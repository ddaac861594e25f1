// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_processed_total",
			Help: "Total number of jobs processed by worker",
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

	AssessmentsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessments_classified_total",
			Help: "Total number of onboarding classifications by category",
		},
		[]string{"category"},
	)

	ScorecardsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scorecards_generated_total",
			Help: "Total number of scorecards generated by rating",
		},
		[]string{"category", "rating"},
	)

	VerdictFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "verdict_fallbacks_total",
			Help: "Total number of verdicts served from the static fallback",
		},
	)
)
