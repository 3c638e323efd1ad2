package sky

import "github.com/prometheus/client_golang/prometheus"

var (
	coordinateClamps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sky",
		Name:      "coordinate_clamps_total",
		Help:      "Coordinate transforms whose intermediate ratio had to be clamped into [-1, 1].",
	}, []string{"op"})
	keplerNotConverged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sky",
		Name:      "kepler_not_converged_total",
		Help:      "Kepler equation solves that stopped at the iteration cap.",
	}, []string{"body"})
	bodyFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sky",
		Name:      "body_failures_total",
		Help:      "Position computations refused by a calculator.",
	}, []string{"body", "reason"})
)

// Collectors returns the metrics of this package so the caller can register them.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{coordinateClamps, keplerNotConverged, bodyFailures}
}
