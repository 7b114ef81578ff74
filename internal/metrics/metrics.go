// Package metrics provides a centralized Prometheus metrics registry for the
// simulation engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	BetsSettledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bankroller",
		Name:      "bets_settled_total",
		Help:      "Total number of bets settled, by strategy and result",
	}, []string{"strategy", "result"})
	RuinEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bankroller",
		Name:      "ruin_events_total",
		Help:      "Total number of runs ended by bankruptcy or drawdown breach",
	}, []string{"strategy", "reason"})
	SimulationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bankroller",
		Name:      "simulation_runs_total",
		Help:      "Total number of simulation runs, by strategy and outcome",
	}, []string{"strategy", "outcome"})
)

// Gauge metrics
var (
	CurrentBankroll = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "bankroller",
		Name:      "current_bankroll",
		Help:      "Bankroll balance of the most recent settled bet",
	}, []string{"strategy"})
)

// Histogram metrics
var (
	BetFraction = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bankroller",
		Name:      "bet_fraction",
		Help:      "Fraction of bettable funds staked per bet",
		Buckets:   []float64{0.01, 0.02, 0.05, 0.1, 0.2, 0.3, 0.5, 0.75, 1},
	}, []string{"strategy"})
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bankroller",
		Name:      "simulation_duration_seconds",
		Help:      "Duration of simulation runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(BetsSettledTotal)
		registry.MustRegister(RuinEventsTotal)
		registry.MustRegister(SimulationRunsTotal)

		// Register gauge metrics
		registry.MustRegister(CurrentBankroll)

		// Register histogram metrics
		registry.MustRegister(BetFraction)
		registry.MustRegister(SimulationDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordBetSettled records a settled bet and the resulting balance.
func RecordBetSettled(strategy string, won bool, fraction, balance float64) {
	result := "loss"
	if won {
		result = "win"
	}
	BetsSettledTotal.WithLabelValues(strategy, result).Inc()
	BetFraction.WithLabelValues(strategy).Observe(fraction)
	CurrentBankroll.WithLabelValues(strategy).Set(balance)
}

// RecordRuin records a run ended by bankruptcy or drawdown breach.
func RecordRuin(strategy, reason string) {
	RuinEventsTotal.WithLabelValues(strategy, reason).Inc()
}

// RecordSimulationRun records a completed simulation run.
func RecordSimulationRun(strategy, outcome string, durationSeconds float64) {
	SimulationRunsTotal.WithLabelValues(strategy, outcome).Inc()
	SimulationDuration.Observe(durationSeconds)
}
