package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects operational metrics for the service. All record
// methods are nil-safe so components can run without a collector.
type Metrics struct {
	registry *prometheus.Registry

	entitySaves    *prometheus.CounterVec
	eventsLogged   *prometheus.CounterVec
	voiceAlerts    prometheus.Counter
	syncQueueDepth prometheus.Gauge
	httpDuration   *prometheus.HistogramVec
}

// NewMetrics creates a metrics collector with its own registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		entitySaves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hospguardian_entity_saves_total",
				Help: "Entity writes by kind",
			},
			[]string{"kind"},
		),
		eventsLogged: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hospguardian_events_logged_total",
				Help: "Audit log entries by severity",
			},
			[]string{"severity"},
		),
		voiceAlerts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "hospguardian_voice_alerts_total",
				Help: "Voice alerts requested",
			},
		),
		syncQueueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "hospguardian_sync_queue_depth",
				Help: "Changes buffered while offline",
			},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hospguardian_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}

	registry.MustRegister(m.entitySaves, m.eventsLogged, m.voiceAlerts, m.syncQueueDepth, m.httpDuration)
	return m
}

// RecordSave counts an entity write
func (m *Metrics) RecordSave(kind string) {
	if m == nil {
		return
	}
	m.entitySaves.WithLabelValues(kind).Inc()
}

// RecordEvent counts an audit log entry
func (m *Metrics) RecordEvent(severity string) {
	if m == nil {
		return
	}
	m.eventsLogged.WithLabelValues(severity).Inc()
}

// RecordVoiceAlert counts a voice alert request
func (m *Metrics) RecordVoiceAlert() {
	if m == nil {
		return
	}
	m.voiceAlerts.Inc()
}

// SetQueueDepth reports the current offline queue length
func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.syncQueueDepth.Set(float64(n))
}

// ObserveRequest records an HTTP request latency sample
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler exposes the registry for the metrics server
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
