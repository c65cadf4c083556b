package providers

import (
	"snowreport/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useFreshRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	prevReg, prevGather := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGather
	})
	return reg
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncScrapeAttempts("candanchu")
	m.IncScrapeFailures("candanchu")
	m.ObserveFetchDuration("candanchu", time.Second)
	m.ObserveStoreDuration("insert", time.Millisecond)
	m.IncRecordsInserted("candanchu")
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	useFreshRegistry(t)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	reg := useFreshRegistry(t)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}})
	mp := m.(*MetricsProvider)

	m.IncRequestsTotal("/api/pistas", 200)
	m.IncRequestsTotal("/api/pistas", 404)
	m.ObserveRequestDuration("/api/pistas", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncScrapeAttempts("sierra-nevada")
	m.IncScrapeAttempts("sierra-nevada")
	m.IncScrapeFailures("sierra-nevada")
	m.ObserveFetchDuration("sierra-nevada", 300*time.Millisecond)
	m.ObserveStoreDuration("insert", 2*time.Millisecond)
	m.IncRecordsInserted("sierra-nevada")

	assert.Equal(t, float64(2), testutil.ToFloat64(mp.scrapeAttempts.WithLabelValues("sierra-nevada")))
	assert.Equal(t, float64(1), testutil.ToFloat64(mp.scrapeFailures.WithLabelValues("sierra-nevada")))
	assert.Equal(t, float64(1), testutil.ToFloat64(mp.requestsTotal.WithLabelValues("/api/pistas", "4xx")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
