package sgp4

import "github.com/prometheus/client_golang/prometheus"

var (
	propagationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sgp4",
		Name:      "propagation_failures_total",
		Help:      "Propagations that returned a failure code.",
	}, []string{"code"})
	keplerNotConverged = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sgp4",
		Name:      "kepler_not_converged_total",
		Help:      "Propagations whose Kepler equation was still moving after the last pass.",
	})
)

// Collectors returns the metrics of this package so the caller can register them.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{propagationFailures, keplerNotConverged}
}
