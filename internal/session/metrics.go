package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - счетчики реестра сессий
type Metrics struct {
	sessionsActive    prometheus.Gauge
	sessionsSpawned   prometheus.Counter
	sessionsRetired   prometheus.Counter
	messagesProcessed prometheus.Counter
	messageDuration   prometheus.Histogram
	dispatchRetries   prometheus.Counter
	sendErrors        prometheus.Counter
	persistErrors     prometheus.Counter
	decodeErrors      prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	const ns, sub = "textquest", "session"

	return &Metrics{
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: sub,
			Name: "active",
			Help: "Number of live session actors",
		}),
		sessionsSpawned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "spawned_total",
			Help: "Total number of session actors started",
		}),
		sessionsRetired: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "retired_total",
			Help: "Total number of session actors that drained and deregistered",
		}),
		messagesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "messages_processed_total",
			Help: "Total number of inbound messages processed by the engine",
		}),
		messageDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns, Subsystem: sub,
			Name:    "message_duration_seconds",
			Help:    "Time spent handling one inbound message, including send and persist",
			Buckets: prometheus.DefBuckets,
		}),
		dispatchRetries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "dispatch_retries_total",
			Help: "Dispatches that hit a draining mailbox and retried",
		}),
		sendErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "send_errors_total",
			Help: "Outbound send failures",
		}),
		persistErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "persist_errors_total",
			Help: "Snapshot encode or save failures",
		}),
		decodeErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub,
			Name: "decode_errors_total",
			Help: "Snapshots that failed to decode and were replaced by the default state",
		}),
	}
}
