package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proctrack_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "proctrack_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// StageTransitions counts accepted stage transitions by origin and target.
	StageTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proctrack_stage_transitions_total",
		Help: "Total accepted request stage transitions",
	}, []string{"from", "to"})

	// RejectedTransitions counts refused transition attempts by reason.
	RejectedTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proctrack_rejected_transitions_total",
		Help: "Total refused stage transition attempts",
	}, []string{"reason"})

	// RequestsByStage gauges how many requests currently sit in each stage.
	RequestsByStage = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "proctrack_requests_by_stage",
		Help: "Number of procurement requests per stage",
	}, []string{"stage"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// RecordTransition increments the accepted transition counter.
func RecordTransition(from, to string) {
	StageTransitions.WithLabelValues(from, to).Inc()
}

// RecordRejectedTransition increments the refused transition counter.
func RecordRejectedTransition(reason string) {
	RejectedTransitions.WithLabelValues(reason).Inc()
}

// SetRequestsByStage records the current number of requests sitting in a stage.
func SetRequestsByStage(stage string, count int) {
	RequestsByStage.WithLabelValues(stage).Set(float64(count))
}
