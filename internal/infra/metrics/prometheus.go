package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SegmentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "visper_segments_processed_total",
		Help: "Segments finished, by final status.",
	}, []string{"status"})

	SegmentStageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "visper_segment_stage_duration_seconds",
		Help:    "Time spent per pipeline stage.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
	}, []string{"stage"})

	ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "visper_active_workers",
		Help: "Workers currently extracting a segment.",
	})

	CropSamplesClamped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visper_crop_samples_clamped_total",
		Help: "Crop samples adjusted to fit inside the frame.",
	})

	SegmentFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "visper_segment_failures_total",
		Help: "Failed segments by error kind.",
	}, []string{"kind"})
)
