package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/louardi/souk-assistant-go/internal/domain"
	"github.com/louardi/souk-assistant-go/internal/infra/observability"
	"github.com/louardi/souk-assistant-go/internal/infra/resilience"
	"github.com/louardi/souk-assistant-go/internal/port"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Recommender serves the personalized recommendation paths. The contract:
// callers never receive an error from the user-facing methods — any remote
// failure (network, empty list, unmappable ids) degrades to the local
// top-rated list with strategy "fallback".
type Recommender struct {
	remote   port.RecommenderCaller
	products port.ProductCatalog
	cache    port.Cache[*domain.RecommendationResult]
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewRecommender creates the recommendation service with all dependencies injected.
func NewRecommender(
	remote port.RecommenderCaller,
	products port.ProductCatalog,
	cache port.Cache[*domain.RecommendationResult],
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Recommender {
	return &Recommender{
		remote:   remote,
		products: products,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
	}
}

// ForUser returns personalized recommendations for the user, falling back to
// top-rated products when the remote service cannot serve.
func (r *Recommender) ForUser(ctx context.Context, userID string, limit int) *domain.RecommendationResult {
	ctx, span := tracer.Start(ctx, "Recommender.ForUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	cacheKey := fmt.Sprintf("rec:user:%s:%d", userID, limit)
	if cached, ok := r.cache.Get(cacheKey); ok {
		r.metrics.IncrCacheHit("recommendations")
		return cached
	}
	r.metrics.IncrCacheMiss("recommendations")

	result := r.resolve(ctx, "recommend_for_user",
		"✨ Sélectionné pour vous :",
		func(ctx context.Context) (*domain.RecommenderResponse, error) {
			return r.remote.RecommendForUser(ctx, userID, limit)
		},
		limit,
	)

	// Degraded results are not cached: the next request retries the remote
	// service instead of pinning the fallback list until the TTL expires.
	if result.Strategy != domain.StrategyFallback {
		r.cache.Set(cacheKey, result)
	}
	return result
}

// SimilarTo returns products similar to the given one, falling back to
// top-rated products when the remote service cannot serve.
func (r *Recommender) SimilarTo(ctx context.Context, productID, limit int) *domain.RecommendationResult {
	ctx, span := tracer.Start(ctx, "Recommender.SimilarTo")
	defer span.End()
	span.SetAttributes(attribute.Int("product.id", productID))

	cacheKey := fmt.Sprintf("rec:similar:%d:%d", productID, limit)
	if cached, ok := r.cache.Get(cacheKey); ok {
		r.metrics.IncrCacheHit("recommendations")
		return cached
	}
	r.metrics.IncrCacheMiss("recommendations")

	result := r.resolve(ctx, "similar_products",
		"Ces produits pourraient aussi vous plaire :",
		func(ctx context.Context) (*domain.RecommenderResponse, error) {
			resp, err := r.remote.SimilarTo(ctx, productID, limit)
			if err != nil {
				return nil, err
			}
			if resp.StrategyUsed == "" {
				resp.StrategyUsed = domain.StrategyItemSimilarity
			}
			return resp, nil
		},
		limit,
	)

	if result.Strategy != domain.StrategyFallback {
		r.cache.Set(cacheKey, result)
	}
	return result
}

// Popular returns globally popular products, same fallback contract.
func (r *Recommender) Popular(ctx context.Context, limit int) *domain.RecommendationResult {
	ctx, span := tracer.Start(ctx, "Recommender.Popular")
	defer span.End()

	return r.resolve(ctx, "popular_products",
		"🔥 Les plus populaires en ce moment :",
		func(ctx context.Context) (*domain.RecommenderResponse, error) {
			resp, err := r.remote.Popular(ctx, limit)
			if err != nil {
				return nil, err
			}
			if resp.StrategyUsed == "" {
				resp.StrategyUsed = domain.StrategyPopularity
			}
			return resp, nil
		},
		limit,
	)
}

// resolve runs the remote call through the fallback combinator: fetch, map
// opaque product ids back to catalog entries, and degrade to top-rated on
// any failure. The mapping treats an all-unmappable response as a failure so
// the fallback path still fires.
func (r *Recommender) resolve(
	ctx context.Context,
	operation string,
	text string,
	call func(context.Context) (*domain.RecommenderResponse, error),
	limit int,
) *domain.RecommendationResult {
	result, degraded, err := resilience.WithFallback(ctx, r.logger, operation,
		func(ctx context.Context) (*domain.RecommendationResult, error) {
			resp, err := call(ctx)
			if err != nil {
				return nil, err
			}

			scored := resp.Recommendations
			if len(scored) == 0 {
				scored = resp.SimilarProducts
			}
			if len(scored) == 0 {
				scored = resp.Products
			}
			if len(scored) == 0 {
				return nil, fmt.Errorf("remote returned no recommendations")
			}
			if len(scored) > limit {
				scored = scored[:limit]
			}

			products, err := r.hydrate(ctx, scored)
			if err != nil {
				return nil, err
			}

			strategy := resp.StrategyUsed
			if strategy == "" {
				strategy = domain.StrategyPopularity
			}
			return &domain.RecommendationResult{
				Text:     text,
				Products: products,
				Strategy: strategy,
			}, nil
		},
		func(ctx context.Context) (*domain.RecommendationResult, error) {
			top, err := r.products.TopRated(ctx, limit)
			if err != nil {
				return nil, err
			}
			return &domain.RecommendationResult{
				Text:     text,
				Products: top,
				Strategy: domain.StrategyFallback,
			}, nil
		},
	)

	if degraded {
		r.metrics.IncrExternalError("recommender")
	}
	if err != nil {
		// Even the local catalog failed; serve an empty, well-formed result.
		r.logger.Error("recommendation fallback failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
		result = &domain.RecommendationResult{
			Text:     text,
			Products: []domain.Product{},
			Strategy: domain.StrategyFallback,
		}
	}

	r.metrics.IncrStrategy(result.Strategy)
	return result
}

// hydrate maps remote product ids to catalog entries, preserving the remote
// ranking. Lookups run concurrently; unknown ids are dropped, and a response
// where every id is unknown counts as a failure.
func (r *Recommender) hydrate(ctx context.Context, scored []domain.ScoredProduct) ([]domain.Product, error) {
	var mu sync.Mutex
	found := make(map[int]domain.Product, len(scored))

	g, gCtx := errgroup.WithContext(ctx)
	for _, s := range scored {
		id := s.ProductID
		g.Go(func() error {
			p, err := r.products.ByID(gCtx, id)
			if err != nil {
				// Unknown id: the remote model may lag behind the catalog.
				return nil
			}
			mu.Lock()
			found[id] = *p
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(found))
	for _, s := range scored {
		if p, ok := found[s.ProductID]; ok {
			products = append(products, p)
		}
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("no recommended product id found in catalog")
	}
	return products, nil
}
