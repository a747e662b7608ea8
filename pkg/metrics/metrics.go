package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the recording-to-tasks workflow.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	SubmissionsTotal   *prometheus.CounterVec
	StatusChecksTotal  *prometheus.CounterVec
	ExtractionsTotal   *prometheus.CounterVec
	CompletionsTotal   *prometheus.CounterVec
	CompletionDuration prometheus.Histogram
	TasksCreatedTotal  prometheus.Counter
}

// New registers the workflow metrics on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projectflow_transcription_submissions_total",
				Help: "Recording submissions by outcome",
			},
			[]string{"outcome"},
		),
		StatusChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projectflow_transcription_status_checks_total",
				Help: "Status checks by reported status",
			},
			[]string{"status"},
		),
		ExtractionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projectflow_task_extractions_total",
				Help: "Task extraction attempts per provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		CompletionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projectflow_transcription_completions_total",
				Help: "Completion attempts by outcome",
			},
			[]string{"outcome"},
		),
		CompletionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "projectflow_transcription_completion_seconds",
				Help:    "Time from submission to persisted completion",
				Buckets: []float64{5, 15, 30, 60, 120, 300, 600, 1800, 3600, 7200},
			},
		),
		TasksCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "projectflow_tasks_created_total",
				Help: "Tasks created from meeting transcripts",
			},
		),
	}
}

// Submission records a submission outcome (accepted, rejected, failed)
func (m *Metrics) Submission(outcome string) {
	if m == nil {
		return
	}
	m.SubmissionsTotal.WithLabelValues(outcome).Inc()
}

// StatusCheck records the status returned to a poller
func (m *Metrics) StatusCheck(status string) {
	if m == nil {
		return
	}
	m.StatusChecksTotal.WithLabelValues(status).Inc()
}

// Extraction records one provider attempt
func (m *Metrics) Extraction(provider, outcome string) {
	if m == nil {
		return
	}
	m.ExtractionsTotal.WithLabelValues(provider, outcome).Inc()
}

// Completion records a completion attempt and, when applied, its latency and task count
func (m *Metrics) Completion(outcome string, sinceSubmit time.Duration, tasks int) {
	if m == nil {
		return
	}
	m.CompletionsTotal.WithLabelValues(outcome).Inc()
	if outcome == "applied" {
		m.CompletionDuration.Observe(sinceSubmit.Seconds())
		m.TasksCreatedTotal.Add(float64(tasks))
	}
}
