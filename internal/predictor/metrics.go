package predictor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"fruitd/internal/classifier"
)

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fruitd",
			Subsystem: "predict",
			Name:      "predictions_total",
			Help:      "Predictions returned, by label and mode",
		},
		[]string{"label", "mode"},
	)

	lowConfidenceTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fruitd",
			Subsystem: "predict",
			Name:      "low_confidence_total",
			Help:      "Predictions rejected for falling below the confidence threshold",
		},
	)

	inferenceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fruitd",
			Subsystem: "predict",
			Name:      "classify_duration_seconds",
			Help:      "Time spent in the classifier, including preprocessing",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
)

func init() {
	prometheus.MustRegister(predictionsTotal, lowConfidenceTotal, inferenceDuration)
}

func countPrediction(mode classifier.Mode, label string) {
	predictionsTotal.WithLabelValues(label, string(mode)).Inc()
}

func countLowConfidence() { lowConfidenceTotal.Inc() }

func observeInference(mode classifier.Mode, d time.Duration) {
	inferenceDuration.WithLabelValues(string(mode)).Observe(d.Seconds())
}
