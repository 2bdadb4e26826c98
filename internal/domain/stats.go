package domain

// AssistantMetrics is the aggregated view served by GET /v1/metrics/assistant.
// Raw series live in Prometheus; this is the human-readable rollup.
type AssistantMetrics struct {
	TotalMessages int64            `json:"total_messages"`
	IntentCounts  map[string]int64 `json:"intent_counts"`
	UnknownRate   float64          `json:"unknown_rate"`
	FallbackRate  float64          `json:"fallback_rate"`
	CacheHitRate  float64          `json:"cache_hit_rate"`
	Period        string           `json:"period"`
}
