package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pbx_reports_processed_total",
		Help: "Reports processed, by detected type and outcome",
	}, []string{"report_type", "status"})

	// ClassificationFallback counts documents that matched no indicator and
	// were treated as ACD.
	ClassificationFallback = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pbx_classification_fallback_total",
		Help: "Documents classified by the ACD fallback",
	})

	ProcessingSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pbx_report_processing_seconds",
		Help:    "Time spent fetching and analyzing one report",
		Buckets: prometheus.DefBuckets,
	})
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)
