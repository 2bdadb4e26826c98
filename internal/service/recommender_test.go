package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/louardi/souk-assistant-go/internal/domain"
	"github.com/louardi/souk-assistant-go/internal/infra/cache"
	"github.com/louardi/souk-assistant-go/internal/infra/catalog"
	"github.com/louardi/souk-assistant-go/internal/infra/observability"
	"github.com/louardi/souk-assistant-go/internal/service"

	"go.uber.org/zap"
)

func newRecommender(remote *mockRecommenderClient) (*service.Recommender, *catalog.Memory) {
	store := catalog.NewMemoryFromSeed()
	rec := service.NewRecommender(
		remote,
		store,
		cache.New[*domain.RecommendationResult](time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)
	return rec, store
}

func TestRecommenderForUser_RemoteOrderPreserved(t *testing.T) {
	remote := &mockRecommenderClient{response: &domain.RecommenderResponse{
		Recommendations: []domain.ScoredProduct{
			{ProductID: 3, Score: 0.9},
			{ProductID: 1, Score: 0.8},
			{ProductID: 2, Score: 0.7},
		},
		StrategyUsed: domain.StrategyItemSimilarity,
	}}
	rec, _ := newRecommender(remote)

	result := rec.ForUser(context.Background(), "user-1", 4)

	if result.Strategy != domain.StrategyItemSimilarity {
		t.Errorf("expected remote strategy, got %q", result.Strategy)
	}
	ids := []int{}
	for _, p := range result.Products {
		ids = append(ids, p.ID)
	}
	want := []int{3, 1, 2}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("remote ranking not preserved: expected %v, got %v", want, ids)
		}
	}
}

func TestRecommenderForUser_RemoteFailureFallsBackToTopRated(t *testing.T) {
	remote := &mockRecommenderClient{err: errors.New("connection refused")}
	rec, store := newRecommender(remote)

	result := rec.ForUser(context.Background(), "user-1", 4)

	if result.Strategy != domain.StrategyFallback {
		t.Fatalf("expected fallback strategy, got %q", result.Strategy)
	}
	top, _ := store.TopRated(context.Background(), 4)
	if len(result.Products) != len(top) {
		t.Fatalf("expected %d top-rated products, got %d", len(top), len(result.Products))
	}
	for i := range top {
		if result.Products[i].ID != top[i].ID {
			t.Errorf("fallback products differ from top-rated at %d", i)
		}
	}
	if result.Text == "" {
		t.Error("fallback result must keep the response text")
	}
}

func TestRecommenderForUser_EmptyRemoteListFallsBack(t *testing.T) {
	remote := &mockRecommenderClient{response: &domain.RecommenderResponse{
		Recommendations: []domain.ScoredProduct{},
		StrategyUsed:    domain.StrategyPopularity,
	}}
	rec, _ := newRecommender(remote)

	result := rec.ForUser(context.Background(), "user-1", 4)
	if result.Strategy != domain.StrategyFallback {
		t.Errorf("empty remote list should degrade, got strategy %q", result.Strategy)
	}
}

func TestRecommenderForUser_UnknownIDsDropped(t *testing.T) {
	remote := &mockRecommenderClient{response: &domain.RecommenderResponse{
		Recommendations: []domain.ScoredProduct{
			{ProductID: 9999, Score: 0.9},
			{ProductID: 2, Score: 0.8},
		},
	}}
	rec, _ := newRecommender(remote)

	result := rec.ForUser(context.Background(), "user-1", 4)

	if len(result.Products) != 1 || result.Products[0].ID != 2 {
		t.Fatalf("expected only the catalog-known id, got %+v", result.Products)
	}
	if result.Strategy == domain.StrategyFallback {
		t.Error("a partially mappable response is not a failure")
	}
}

func TestRecommenderForUser_AllUnknownIDsFallBack(t *testing.T) {
	remote := &mockRecommenderClient{response: &domain.RecommenderResponse{
		Recommendations: []domain.ScoredProduct{
			{ProductID: 9998, Score: 0.9},
			{ProductID: 9999, Score: 0.8},
		},
	}}
	rec, _ := newRecommender(remote)

	result := rec.ForUser(context.Background(), "user-1", 4)
	if result.Strategy != domain.StrategyFallback {
		t.Errorf("all-unknown ids should degrade, got strategy %q", result.Strategy)
	}
}

func TestRecommenderForUser_SecondCallServedFromCache(t *testing.T) {
	remote := &mockRecommenderClient{response: &domain.RecommenderResponse{
		Recommendations: []domain.ScoredProduct{{ProductID: 1, Score: 0.9}},
	}}
	rec, _ := newRecommender(remote)

	first := rec.ForUser(context.Background(), "user-1", 4)
	second := rec.ForUser(context.Background(), "user-1", 4)

	if remote.calls != 1 {
		t.Fatalf("expected a single remote call, got %d", remote.calls)
	}
	if first.Strategy != second.Strategy || len(first.Products) != len(second.Products) {
		t.Error("cached result differs from the original")
	}
}

// A transient remote blip must not pin fallback results for the cache TTL:
// degraded results are not cached, so the next call retries the remote.
func TestRecommenderForUser_DegradedResultNotCached(t *testing.T) {
	remote := &mockRecommenderClient{err: errors.New("connection refused")}
	rec, _ := newRecommender(remote)

	first := rec.ForUser(context.Background(), "user-1", 4)
	if first.Strategy != domain.StrategyFallback {
		t.Fatalf("expected fallback strategy, got %q", first.Strategy)
	}

	// Remote recovers.
	remote.err = nil
	remote.response = &domain.RecommenderResponse{
		Recommendations: []domain.ScoredProduct{{ProductID: 2, Score: 0.9}},
		StrategyUsed:    domain.StrategyItemSimilarity,
	}

	second := rec.ForUser(context.Background(), "user-1", 4)
	if second.Strategy != domain.StrategyItemSimilarity {
		t.Fatalf("expected the recovered remote to serve, got %q", second.Strategy)
	}
	if len(second.Products) != 1 || second.Products[0].ID != 2 {
		t.Fatalf("expected product 2 from the remote, got %+v", second.Products)
	}
}

func TestRecommenderForUser_ListCappedAtLimit(t *testing.T) {
	remote := &mockRecommenderClient{response: &domain.RecommenderResponse{
		Recommendations: []domain.ScoredProduct{
			{ProductID: 1}, {ProductID: 2}, {ProductID: 3},
			{ProductID: 4}, {ProductID: 5}, {ProductID: 6},
		},
	}}
	rec, _ := newRecommender(remote)

	result := rec.ForUser(context.Background(), "user-1", 4)
	if len(result.Products) != 4 {
		t.Fatalf("expected the list capped at 4, got %d", len(result.Products))
	}
}

func TestRecommenderSimilarTo_DefaultStrategy(t *testing.T) {
	remote := &mockRecommenderClient{response: &domain.RecommenderResponse{
		SimilarProducts: []domain.ScoredProduct{{ProductID: 2, Score: 0.9}},
	}}
	rec, _ := newRecommender(remote)

	result := rec.SimilarTo(context.Background(), 1, 4)
	if result.Strategy != domain.StrategyItemSimilarity {
		t.Errorf("expected item_similarity default, got %q", result.Strategy)
	}
}

func TestRecommenderPopular_DefaultStrategy(t *testing.T) {
	remote := &mockRecommenderClient{response: &domain.RecommenderResponse{
		Products: []domain.ScoredProduct{{ProductID: 5, Score: 0.9}},
	}}
	rec, _ := newRecommender(remote)

	result := rec.Popular(context.Background(), 4)
	if result.Strategy != domain.StrategyPopularity {
		t.Errorf("expected popularity default, got %q", result.Strategy)
	}
	if len(result.Products) != 1 || result.Products[0].ID != 5 {
		t.Fatalf("expected product 5, got %+v", result.Products)
	}
}
