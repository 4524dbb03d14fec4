package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"customerpulse/internal/analytics"
)

// Pipeline metrics exposed on /metrics. The returning-clamp counter
// exists because the clamp is a silent safety net in the computation
// itself; firing at all means the source data produced a month where
// new customers exceeded day-deduped uniques, which is worth seeing
// on a dashboard even though the run succeeds.
var (
	pipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "customerpulse",
		Name:      "pipeline_runs_total",
		Help:      "Pipeline executions by outcome.",
	}, []string{"outcome"})

	rowsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "customerpulse",
		Name:      "rows_dropped_total",
		Help:      "Source rows dropped during cleaning, by reason.",
	}, []string{"reason"})

	rowsKept = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "customerpulse",
		Name:      "rows_kept_total",
		Help:      "Source rows that survived cleaning.",
	})

	returningClamped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "customerpulse",
		Name:      "returning_clamp_total",
		Help:      "Months where the returning-customer count was clamped to zero.",
	})
)

// ObservePipelineRun records the diagnostics of one pipeline run.
func ObservePipelineRun(stats analytics.RunStats, err error) {
	if err != nil {
		pipelineRuns.WithLabelValues("error").Inc()
		return
	}
	pipelineRuns.WithLabelValues("success").Inc()

	rowsKept.Add(float64(stats.Clean.Kept))
	rowsDropped.WithLabelValues("blank_customer").Add(float64(stats.Clean.BlankCustomer))
	rowsDropped.WithLabelValues("bad_date").Add(float64(stats.Clean.BadDate))
	rowsDropped.WithLabelValues("future_date").Add(float64(stats.Clean.FutureDate))
	rowsDropped.WithLabelValues("excluded").Add(float64(stats.Clean.Excluded))
	returningClamped.Add(float64(stats.ClampedMonths))
}
