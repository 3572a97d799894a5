package repository

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var histogramRemoteLatency = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "expense_tracker",
		Subsystem: "repository",
		Name:      "remote_request_duration_seconds",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	},
	[]string{"table", "op", "error"},
)

func observeRemote(table, op string, elapsed time.Duration, err bool) {
	histogramRemoteLatency.
		WithLabelValues(table, op, strconv.FormatBool(err)).
		Observe(elapsed.Seconds())
}
