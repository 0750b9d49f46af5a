// Package metrics provides Prometheus metrics for the analyzer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AnalysesTotal counts completed analyses by report shape
	// (book, trades, market).
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analyzer_analyses_total",
		Help: "Completed analyses by report shape.",
	}, []string{"shape"})

	// FetchDuration observes upstream REST fetch latency.
	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analyzer_fetch_duration_seconds",
		Help:    "Market data fetch latency by endpoint and market type.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "market"})

	// FetchErrors counts failed upstream fetches.
	FetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analyzer_fetch_errors_total",
		Help: "Failed market data fetches by endpoint and market type.",
	}, []string{"endpoint", "market"})

	// BullishnessScore exposes the most recent heuristic score by source
	// (book or trades).
	BullishnessScore = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "analyzer_bullishness_score",
		Help: "Most recent bullishness score by source.",
	}, []string{"source"})
)

// RecordAnalysis updates the counters and gauges for one finished analysis.
func RecordAnalysis(shape string, score int) {
	AnalysesTotal.WithLabelValues(shape).Inc()
	if shape == "book" || shape == "trades" {
		BullishnessScore.WithLabelValues(shape).Set(float64(score))
	}
}

// StartMetricsServer serves /metrics on addr in the background.
func StartMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(addr, mux)
	}()
}
