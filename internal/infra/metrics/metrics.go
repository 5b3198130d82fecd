package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CyclesTotal counts finished capture cycles by outcome.
	CyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronocapture_cycles_total",
		Help: "Finished capture cycles by outcome.",
	}, []string{"outcome"})

	// CaptureDuration observes wall time of the capture stage.
	CaptureDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chronocapture_capture_duration_seconds",
		Help:    "Wall time of the capture stage.",
		Buckets: prometheus.DefBuckets,
	})

	// DeliveryDuration observes wall time of the delivery stage.
	DeliveryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chronocapture_delivery_duration_seconds",
		Help:    "Wall time of the delivery stage.",
		Buckets: prometheus.DefBuckets,
	})
)
