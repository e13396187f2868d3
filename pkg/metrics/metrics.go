// Package metrics provides Prometheus metrics for the slip intake and
// settlement pipeline.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// TrackerMetrics collects and exposes intake and tracking metrics.
type TrackerMetrics struct {
	registry *prometheus.Registry

	// Intake metrics
	SlipsTotal     *prometheus.CounterVec
	SlipConfidence prometheus.Histogram
	OCRScore       prometheus.Histogram

	// Tracking metrics
	TicksTotal       *prometheus.CounterVec
	TickErrors       *prometheus.CounterVec
	ActiveBets       prometheus.Gauge
	SettlementsTotal *prometheus.CounterVec
	LegResultsTotal  *prometheus.CounterVec
}

// NewTrackerMetrics creates a new metrics collector on its own registry.
func NewTrackerMetrics() *TrackerMetrics {
	registry := prometheus.NewRegistry()

	tm := &TrackerMetrics{
		registry: registry,

		SlipsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betbot_slips_total",
				Help: "Total slips processed by intake",
			},
			[]string{"source", "status"},
		),
		SlipConfidence: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "betbot_slip_confidence",
				Help:    "Parse confidence of processed slips (0-1)",
				Buckets: prometheus.LinearBuckets(0, 0.1, 11),
			},
		),
		OCRScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "betbot_ocr_score",
				Help:    "Winning OCR candidate score",
				Buckets: prometheus.LinearBuckets(0, 10, 16),
			},
		),

		TicksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betbot_ticks_total",
				Help: "Total polling ticks per loop",
			},
			[]string{"loop"},
		),
		TickErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betbot_tick_errors_total",
				Help: "Per-bet failures isolated during ticks",
			},
			[]string{"loop"},
		),
		ActiveBets: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "betbot_active_bets",
				Help: "Number of bets currently being tracked",
			},
		),
		SettlementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betbot_settlements_total",
				Help: "Total bets settled",
			},
			[]string{"outcome"},
		),
		LegResultsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betbot_leg_results_total",
				Help: "Terminal leg results by market kind",
			},
			[]string{"kind", "result"},
		),
	}

	tm.registry.MustRegister(
		tm.SlipsTotal,
		tm.SlipConfidence,
		tm.OCRScore,
		tm.TicksTotal,
		tm.TickErrors,
		tm.ActiveBets,
		tm.SettlementsTotal,
		tm.LegResultsTotal,
	)
	return tm
}

// Registry returns the prometheus registry for the /metrics handler.
func (tm *TrackerMetrics) Registry() *prometheus.Registry {
	return tm.registry
}

// RecordSlip records one intake attempt.
func (tm *TrackerMetrics) RecordSlip(source, status string, confidence float64) {
	tm.SlipsTotal.WithLabelValues(source, status).Inc()
	if confidence >= 0 {
		tm.SlipConfidence.Observe(confidence)
	}
}

// RecordTick records one loop pass and its isolated per-bet failures.
func (tm *TrackerMetrics) RecordTick(loop string, failures int) {
	tm.TicksTotal.WithLabelValues(loop).Inc()
	for i := 0; i < failures; i++ {
		tm.TickErrors.WithLabelValues(loop).Inc()
	}
}

// RecordSettlement records a bet reaching its terminal outcome.
func (tm *TrackerMetrics) RecordSettlement(outcome string) {
	tm.SettlementsTotal.WithLabelValues(outcome).Inc()
}

// RecordLegResult records a leg going terminal.
func (tm *TrackerMetrics) RecordLegResult(kind, result string) {
	tm.LegResultsTotal.WithLabelValues(kind, result).Inc()
}

var (
	defaultMetrics *TrackerMetrics
	once           sync.Once
)

// Default returns the shared global metrics instance.
func Default() *TrackerMetrics {
	once.Do(func() {
		defaultMetrics = NewTrackerMetrics()
	})
	return defaultMetrics
}
