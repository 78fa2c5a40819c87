// Package monitoring exposes the service's Prometheus metrics.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	predictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffee_predictor_predictions_total",
		Help: "Total number of revenue predictions served.",
	})
	predictionsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coffee_predictor_predictions_failed_total",
		Help: "Total number of failed predictions by error kind.",
	}, []string{"kind"})
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffee_predictor_cache_hits_total",
		Help: "Total number of predictions answered from the result cache.",
	})
	predictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "coffee_predictor_prediction_duration_seconds",
		Help:    "Duration of a prediction including a first model load.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
	})
	modelLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "coffee_predictor_model_load_duration_seconds",
		Help:    "Duration of model artifact load attempts.",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0},
	})
	modelLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coffee_predictor_model_loaded",
		Help: "1 once the model artifact has been loaded.",
	})
)

// ObservePrediction records one prediction; kind is empty on success.
func ObservePrediction(d time.Duration, kind string) {
	predictionDuration.Observe(d.Seconds())
	if kind != "" {
		predictionsFailed.WithLabelValues(kind).Inc()
		return
	}
	predictionsTotal.Inc()
}

func ObserveCacheHit() {
	cacheHits.Inc()
}

// ObserveModelLoad records one load attempt; kind is empty on success.
func ObserveModelLoad(d time.Duration, kind string) {
	modelLoadDuration.Observe(d.Seconds())
	if kind == "" {
		modelLoaded.Set(1)
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
