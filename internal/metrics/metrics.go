// Package metrics holds the prometheus collectors exported by the web server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Simulations counts simulation requests by outcome (ok, invalid).
	Simulations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cdi_simulator_simulations_total",
			Help: "Number of simulations run, by outcome",
		},
		[]string{"outcome"},
	)

	// Exports counts rendered exports by kind (pdf, xlsx, csv, chart) and status.
	Exports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cdi_simulator_exports_total",
			Help: "Number of exports rendered, by kind and status",
		},
		[]string{"kind", "status"},
	)

	// BanksPerSimulation observes how many banks each simulation compares.
	BanksPerSimulation = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cdi_simulator_banks_per_simulation",
			Help:    "Number of banks compared per simulation",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		},
	)
)

// Outcome and status label values.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	StatusOK       = "ok"
	StatusError    = "error"
)
