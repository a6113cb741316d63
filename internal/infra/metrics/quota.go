// File: internal/infra/metrics/quota.go
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	quotaChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quota_checks_total",
			Help: "Upstream quota checks by resulting HTTP status (0 = no response).",
		},
		[]string{"status"},
	)

	quotaCheckLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quota_check_latency_ms",
			Help:    "Upstream quota check latency distribution in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 12000, 30000},
		},
	)
)

func init() {
	register(quotaChecksTotal, quotaCheckLatencyMs)
}

// ObserveQuotaCheck records one completed upstream call.
func ObserveQuotaCheck(status int, latencyMs float64) {
	quotaChecksTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	quotaCheckLatencyMs.Observe(latencyMs)
}
