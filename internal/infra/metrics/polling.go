// File: internal/infra/metrics/polling.go
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	updatesProcessedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "updates_processed_total",
			Help: "Inbound updates handed to the command dispatcher.",
		},
	)

	updatesSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "updates_skipped_total",
			Help: "Inbound updates skipped before dispatch (no_payload/unauthorized).",
		},
		[]string{"reason"},
	)

	pollFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "poll_failures_total",
			Help: "Failed long-poll fetches against the messaging transport.",
		},
	)

	updateCursor = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "update_cursor",
			Help: "Highest update id processed so far.",
		},
	)

	messagesSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "messages_sent_total",
			Help: "Outbound messages accepted by the transport.",
		},
	)

	messageSendErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "message_send_errors_total",
			Help: "Outbound messages the transport rejected.",
		},
	)
)

func init() {
	register(updatesProcessedTotal, updatesSkippedTotal, pollFailuresTotal,
		updateCursor, messagesSentTotal, messageSendErrorsTotal)
}

func IncUpdateProcessed() { updatesProcessedTotal.Inc() }

func IncUpdateSkipped(reason string) { updatesSkippedTotal.WithLabelValues(reason).Inc() }

func IncPollFailure() { pollFailuresTotal.Inc() }

func SetUpdateCursor(id int64) { updateCursor.Set(float64(id)) }

func IncMessageSent() { messagesSentTotal.Inc() }

func IncMessageSendError() { messageSendErrorsTotal.Inc() }
