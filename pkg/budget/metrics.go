package budget

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tripbudget/backend/pkg/allocation"
)

// Metrics are the collectors of the budget service. They are registered
// by the router.
var Metrics = []prometheus.Collector{
	allocationFallbacks,
	analysisFallbacks,
}

var allocationFallbacks = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "budget_allocation_fallbacks_total",
		Help: "How many advisor allocations were replaced by a local allocation, partitioned by reason.",
	},
	[]string{"reason"},
)

var analysisFallbacks = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "budget_analysis_fallbacks_total",
		Help: "How many analyses used the heuristic suggestions because the advisor returned nothing.",
	},
)

func countFallback(outcome allocation.Outcome) {
	if outcome.Fallback() {
		allocationFallbacks.WithLabelValues(string(outcome.Reason)).Inc()
	}
}
