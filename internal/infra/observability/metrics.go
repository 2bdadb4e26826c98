package observability

import (
	"time"

	"github.com/louardi/souk-assistant-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the assistant.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	intentsTotal    *prometheus.CounterVec
	strategiesTotal *prometheus.CounterVec
	externalErrors  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	messagesTotal   *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistant_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		intentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_intents_total",
				Help: "Total messages classified, by winning intent.",
			},
			[]string{"intent"},
		),
		strategiesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_recommendations_total",
				Help: "Total recommendation lists served, by strategy.",
			},
			[]string{"strategy"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		messagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_messages_total",
				Help: "Total chat messages appended, by role.",
			},
			[]string{"role"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrIntent increments the classified-intent counter.
func (m *Metrics) IncrIntent(intent domain.Intent) {
	m.intentsTotal.WithLabelValues(string(intent)).Inc()
}

// IncrStrategy increments the recommendation-strategy counter.
func (m *Metrics) IncrStrategy(strategy string) {
	m.strategiesTotal.WithLabelValues(strategy).Inc()
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrMessage increments the appended-message counter.
func (m *Metrics) IncrMessage(role domain.MessageRole) {
	m.messagesTotal.WithLabelValues(string(role)).Inc()
}

// GetSnapshot returns a snapshot of assistant metrics suitable for the
// GET /v1/metrics/assistant endpoint.
func (m *Metrics) GetSnapshot() *domain.AssistantMetrics {
	intents := map[string]int64{}
	var total float64
	for _, intent := range []domain.Intent{
		domain.IntentGreeting, domain.IntentProductSearch, domain.IntentCategoryBrowse,
		domain.IntentRecommendation, domain.IntentOrderStatus, domain.IntentDeliveryTracking,
		domain.IntentPriceInquiry, domain.IntentHelp, domain.IntentPayment,
		domain.IntentReturn, domain.IntentThanks, domain.IntentAddToCart, domain.IntentUnknown,
	} {
		v := getCounterValue(m.intentsTotal, string(intent))
		if v > 0 {
			intents[string(intent)] = int64(v)
		}
		total += v
	}

	fallbacks := getCounterValue(m.strategiesTotal, domain.StrategyFallback)
	recs := fallbacks +
		getCounterValue(m.strategiesTotal, domain.StrategyPopularity) +
		getCounterValue(m.strategiesTotal, domain.StrategyItemSimilarity)
	// Remote strategies carry service-defined labels; they are part of the
	// Prometheus series but not of this aggregated snapshot.

	unknownRate := float64(0)
	if total > 0 {
		unknownRate = getCounterValue(m.intentsTotal, string(domain.IntentUnknown)) / total
	}
	fallbackRate := float64(0)
	if recs > 0 {
		fallbackRate = fallbacks / recs
	}

	hits := getCounterValue(m.cacheHits, "recommendations")
	misses := getCounterValue(m.cacheMisses, "recommendations")
	cacheHitRate := float64(0)
	if hits+misses > 0 {
		cacheHitRate = hits / (hits + misses)
	}

	return &domain.AssistantMetrics{
		TotalMessages: int64(total),
		IntentCounts:  intents,
		UnknownRate:   unknownRate,
		FallbackRate:  fallbackRate,
		CacheHitRate:  cacheHitRate,
		Period:        "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
