package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	analysisRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cyra",
			Name:      "analysis_runs_total",
			Help:      "Total number of analysis pipeline runs, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	analysisDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cyra",
			Name:      "analysis_seconds",
			Help:      "Analysis pipeline latency in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	snapshotUsers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cyra",
			Name:      "snapshot_users",
			Help:      "Users covered by the most recent scheduled snapshot refresh.",
		},
	)
)

// Register attaches cyra collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		analysisRunsTotal,
		analysisDurationSeconds,
		snapshotUsers,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveAnalysis records one pipeline run with its outcome label.
func ObserveAnalysis(duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	analysisRunsTotal.WithLabelValues(label).Inc()
	if duration < 0 {
		duration = 0
	}
	analysisDurationSeconds.Observe(duration.Seconds())
}

// SetSnapshotCount records how many users the last scheduled refresh covered.
func SetSnapshotCount(count int) {
	snapshotUsers.Set(float64(count))
}
