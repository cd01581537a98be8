package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetricsExposition(t *testing.T) {
	m := NewMetrics()

	m.RecordSave("asset")
	m.RecordSave("asset")
	m.RecordEvent("critical")
	m.RecordVoiceAlert()
	m.SetQueueDepth(4)
	m.ObserveRequest(http.MethodGet, "/api/v1/assets", http.StatusOK, 15*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `hospguardian_entity_saves_total{kind="asset"} 2`)
	assert.Contains(t, body, `hospguardian_events_logged_total{severity="critical"} 1`)
	assert.Contains(t, body, "hospguardian_voice_alerts_total 1")
	assert.Contains(t, body, "hospguardian_sync_queue_depth 4")
	assert.Contains(t, body, "hospguardian_http_request_duration_seconds_count")
}

func TestNilCollectorIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordSave("asset")
	m.RecordEvent("info")
	m.RecordVoiceAlert()
	m.SetQueueDepth(0)
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()
	a.RecordVoiceAlert()

	assert.Contains(t, scrape(t, a), "hospguardian_voice_alerts_total 1")
	assert.Contains(t, scrape(t, b), "hospguardian_voice_alerts_total 0")
}
