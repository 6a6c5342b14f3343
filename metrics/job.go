package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type JobMetric struct {
	status            prometheus.Gauge
	resultCount       prometheus.Gauge
	lastRunAt         prometheus.Gauge
	lastRunDuration   prometheus.Gauge
	lastRunExpectedAt prometheus.Gauge
}

func NewJob(jobName string, operation string) *JobMetric {
	GetApplicationMetrics().jobsTotal.Inc()

	presetLabels := map[string]string{"job": jobName, LabelNameOperation: operation}
	job := &JobMetric{
		status: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystemJobs,
			Name:        "status",
			Help:        "Indicates whether the last run of this job failed. Any value >0 means that errors occurred.",
			ConstLabels: presetLabels,
		}),
		resultCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystemJobs,
			Name:        "result_count",
			Help:        "The amount of paths the last successful run returned.",
			ConstLabels: presetLabels,
		}),
		lastRunAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystemJobs,
			Name:        "last_run_at",
			Help:        "Unix timestamp of the last run.",
			ConstLabels: presetLabels,
		}),
		lastRunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystemJobs,
			Name:        "last_run_duration_seconds",
			Help:        "How long the last run took in seconds.",
			ConstLabels: presetLabels,
		}),
		lastRunExpectedAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystemJobs,
			Name:        "last_run_expected_at",
			Help:        "Unix timestamp on which the latest run should have occurred according to the schedule.",
			ConstLabels: presetLabels,
		}),
	}

	registry.MustRegister(job.status)
	registry.MustRegister(job.resultCount)
	registry.MustRegister(job.lastRunAt)
	registry.MustRegister(job.lastRunDuration)
	registry.MustRegister(job.lastRunExpectedAt)
	return job
}

func (j *JobMetric) Drop() {
	registry.Unregister(j.status)
	registry.Unregister(j.resultCount)
	registry.Unregister(j.lastRunAt)
	registry.Unregister(j.lastRunDuration)
	registry.Unregister(j.lastRunExpectedAt)

	GetApplicationMetrics().jobsTotal.Dec()
}

func (j *JobMetric) Succeeded(count int, at time.Time, took time.Duration) {
	j.status.Set(0)
	j.resultCount.Set(float64(count))
	j.ran(at, took)
}

// Failed keeps the result count of the last successful run.
func (j *JobMetric) Failed(at time.Time, took time.Duration) {
	j.status.Set(1)
	j.ran(at, took)
}

func (j *JobMetric) Expected(at time.Time) {
	if at.IsZero() {
		return
	}
	j.lastRunExpectedAt.Set(float64(at.Unix()))
}

func (j *JobMetric) ran(at time.Time, took time.Duration) {
	j.lastRunAt.Set(float64(at.Unix()))
	j.lastRunDuration.Set(took.Seconds())
}
