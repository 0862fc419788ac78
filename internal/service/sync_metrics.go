package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
)

var (
	syncRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chama_sync",
		Name:      "rows_total",
		Help:      "Rows handled per collection, phase and result.",
	}, []string{"collection", "phase", "result"})

	collectionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chama_sync",
		Name:      "collection_seconds",
		Help:      "Duration of one collection sync for one scope.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"collection", "result"})

	passResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chama_sync",
		Name:      "passes_total",
		Help:      "Completed sync passes by mode and result.",
	}, []string{"mode", "result"})

	retryAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chama_sync",
		Name:      "write_retries_total",
		Help:      "Local writes retried after a referential integrity failure.",
	}, []string{"collection"})

	watermarkGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "chama_sync",
		Name:      "watermark_unix_ms",
		Help:      "Last advanced watermark per collection.",
	}, []string{"collection"})

	syncTracer = otel.Tracer("github.com/MKhiriev/go-chama-sync/internal/service")
)

func init() {
	prometheus.MustRegister(syncRows, collectionDuration, passResults, retryAttempts, watermarkGauge)
}
