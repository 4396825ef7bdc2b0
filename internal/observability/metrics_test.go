package observability

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-triage/internal/config"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordProcessed("billing", "critical")
	m.RecordProcessed("billing", "critical")
	m.RecordFailure("resolved", "")
	m.RecordCacheLookup("hit")
	m.ObserveOracle(1500 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ticketsProcessed.WithLabelValues("billing", "critical")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pipelineFailures.WithLabelValues("resolved", "UNKNOWN")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
}

func TestMetricsNilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordProcessed("general", "low")
		m.RecordFailure("received", "INPUT_EMPTY")
		m.ObserveOracle(time.Second)
		m.RecordCacheLookup("miss")
		m.RecordRequest("/tickets", "POST", "201")
	})
}

func TestMetricsHandlerExposesRegistry(t *testing.T) {
	m := NewMetrics()
	m.RecordProcessed("technical", "high")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `triage_tickets_processed_total{category="technical",priority="high"} 1`))
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "chatty", Output: "stderr"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(0))
	assert.False(t, logger.Core().Enabled(-1))
}
