package providers

import (
	"snowreport/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncScrapeAttempts(resort string)
	IncScrapeFailures(resort string)
	ObserveFetchDuration(resort string, duration time.Duration)
	ObserveStoreDuration(operation string, duration time.Duration)
	IncRecordsInserted(slug string)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	scrapeAttempts  *prometheus.CounterVec
	scrapeFailures  *prometheus.CounterVec
	fetchDuration   *prometheus.HistogramVec
	storeDuration   *prometheus.HistogramVec
	recordsInserted *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncScrapeAttempts(resort string) {
	m.scrapeAttempts.WithLabelValues(resort).Inc()
}

func (m *MetricsProvider) IncScrapeFailures(resort string) {
	m.scrapeFailures.WithLabelValues(resort).Inc()
}

func (m *MetricsProvider) ObserveFetchDuration(resort string, duration time.Duration) {
	m.fetchDuration.WithLabelValues(resort).Observe(duration.Seconds())
}

func (m *MetricsProvider) ObserveStoreDuration(operation string, duration time.Duration) {
	m.storeDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncRecordsInserted(slug string) {
	m.recordsInserted.WithLabelValues(slug).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "snowreport_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "snowreport_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "snowreport_cache_hits_total",
			Help: "Total number of response cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "snowreport_cache_misses_total",
			Help: "Total number of response cache misses",
		}),

		scrapeAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "snowreport_scrape_attempts_total",
			Help: "Total number of page fetch attempts per resort",
		}, []string{"resort"}),

		scrapeFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "snowreport_scrape_failures_total",
			Help: "Total number of scrapes that failed after all attempts",
		}, []string{"resort"}),

		fetchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "snowreport_fetch_duration_seconds",
			Help:    "Duration of a page fetch including retries",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"resort"}),

		storeDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "snowreport_store_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),

		recordsInserted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "snowreport_records_inserted_total",
			Help: "Total number of resort records stored",
		}, []string{"slug"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncScrapeAttempts(_ string)                       {}
func (n *noopMetrics) IncScrapeFailures(_ string)                       {}
func (n *noopMetrics) ObserveFetchDuration(_ string, _ time.Duration)   {}
func (n *noopMetrics) ObserveStoreDuration(_ string, _ time.Duration)   {}
func (n *noopMetrics) IncRecordsInserted(_ string)                      {}
