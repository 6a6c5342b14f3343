package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type ApplicationMetrics struct {
	// only updatable through NewTraversal/Drop
	sourcesTotal prometheus.Gauge
	// only updatable through NewJob/Drop
	jobsTotal prometheus.Gauge
}

var (
	applicationMetrics *ApplicationMetrics
	once               sync.Once
)

func GetApplicationMetrics() *ApplicationMetrics {
	once.Do(func() {
		applicationMetrics = &ApplicationMetrics{
			sourcesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystemSources,
				Name:      "total",
				Help:      "Total number of registered sources",
			}),
			jobsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystemJobs,
				Name:      "total",
				Help:      "Total number of scheduled scan jobs",
			}),
		}

		registry.MustRegister(applicationMetrics.sourcesTotal)
		registry.MustRegister(applicationMetrics.jobsTotal)
	})

	return applicationMetrics
}
