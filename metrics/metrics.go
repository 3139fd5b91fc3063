package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Calculations counts engine operations by outcome.
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_calculations_total",
			Help: "Amortization calculations by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	// CacheLookups counts plan cache lookups.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_cache_lookups_total",
			Help: "Plan cache lookups by result",
		},
		[]string{"result"},
	)

	// CalculationDuration measures time spent computing plans.
	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planner_calculation_duration_seconds",
			Help:    "Time spent computing amortization plans",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)
