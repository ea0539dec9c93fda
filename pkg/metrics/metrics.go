// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prediction submission outcomes.
const (
	ResultAccepted  = "accepted"
	ResultLocked    = "locked"
	ResultDuplicate = "duplicate"
)

var (
	LiveViewers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "live_viewers",
		Help: "Open live score connections.",
	})

	LiveBroadcasts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "live_broadcasts_total",
		Help: "Events fanned out to live viewers.",
	})

	LiveDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "live_dropped_connections_total",
		Help: "Live viewers dropped because they could not keep up.",
	})

	PredictionsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "predictions_submitted_total",
		Help: "Prediction submissions by outcome.",
	}, []string{"result"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
