package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	LabelNameOperation = "operation"
	LabelNameResult    = "result"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

// TraversalMetrics counts the filesystem work done for one source. A nil
// *TraversalMetrics is valid and records nothing.
type TraversalMetrics struct {
	directoriesListed prometheus.Counter
	entriesChecked     prometheus.Counter
	operations        *prometheus.CounterVec
	duration          *prometheus.HistogramVec
}

func NewTraversal(sourceName string) *TraversalMetrics {
	GetApplicationMetrics().sourcesTotal.Inc()

	presetLabels := map[string]string{"source": sourceName}
	m := &TraversalMetrics{
		directoriesListed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystemTraversal,
			Name:        "directories_listed_total",
			Help:        "The amount of directory listings performed.",
			ConstLabels: presetLabels,
		}),
		entriesChecked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystemTraversal,
			Name:        "entries_checked_total",
			Help:        "The amount of link-aware metadata lookups performed.",
			ConstLabels: presetLabels,
		}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystemTraversal,
			Name:        "operations_total",
			Help:        "The amount of finished traversal operations.",
			ConstLabels: presetLabels,
		}, []string{
			LabelNameOperation,
			LabelNameResult,
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   subsystemTraversal,
			Name:        "operation_duration_seconds",
			Help:        "How long traversal operations took.",
			ConstLabels: presetLabels,
			Buckets:     prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{
			LabelNameOperation,
		}),
	}

	registry.MustRegister(m.directoriesListed)
	registry.MustRegister(m.entriesChecked)
	registry.MustRegister(m.operations)
	registry.MustRegister(m.duration)
	return m
}

func (m *TraversalMetrics) Drop() {
	if m == nil {
		return
	}

	registry.Unregister(m.directoriesListed)
	registry.Unregister(m.entriesChecked)
	registry.Unregister(m.operations)
	registry.Unregister(m.duration)

	GetApplicationMetrics().sourcesTotal.Dec()
}

func (m *TraversalMetrics) DirectoryListed() {
	if m == nil {
		return
	}
	m.directoriesListed.Inc()
}

func (m *TraversalMetrics) EntriesChecked(count int) {
	if m == nil {
		return
	}
	m.entriesChecked.Add(float64(count))
}

func (m *TraversalMetrics) OperationFinished(operation string, started time.Time, err error) {
	if m == nil {
		return
	}

	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}

	m.operations.WithLabelValues(operation, result).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
