package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/louardi/souk-assistant-go/internal/domain"
	"github.com/louardi/souk-assistant-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("client")

// RecommenderClient calls the external recommendation service. Every call
// goes through the bulkhead, the circuit breaker and the retry policy; the
// service layer adds the local top-rated fallback on top.
type RecommenderClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
}

// NewRecommenderClient creates a new RecommenderClient.
func NewRecommenderClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config) *RecommenderClient {
	return &RecommenderClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(cfg.MaxConcurrency),
		cfg:        cfg,
	}
}

// RecommendForUser fetches personalized recommendations for a user.
func (c *RecommenderClient) RecommendForUser(ctx context.Context, userID string, limit int) (*domain.RecommenderResponse, error) {
	ctx, span := tracer.Start(ctx, "RecommenderClient.RecommendForUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID), attribute.Int("limit", limit))

	url := fmt.Sprintf("%s/v1/recommendations/%s?limit=%d", c.baseURL, userID, limit)
	return c.get(ctx, url)
}

// SimilarTo fetches products similar to the given product.
func (c *RecommenderClient) SimilarTo(ctx context.Context, productID, limit int) (*domain.RecommenderResponse, error) {
	ctx, span := tracer.Start(ctx, "RecommenderClient.SimilarTo")
	defer span.End()
	span.SetAttributes(attribute.Int("product.id", productID), attribute.Int("limit", limit))

	url := fmt.Sprintf("%s/v1/products/%d/similar?limit=%d", c.baseURL, productID, limit)
	return c.get(ctx, url)
}

// Popular fetches globally popular products.
func (c *RecommenderClient) Popular(ctx context.Context, limit int) (*domain.RecommenderResponse, error) {
	ctx, span := tracer.Start(ctx, "RecommenderClient.Popular")
	defer span.End()
	span.SetAttributes(attribute.Int("limit", limit))

	url := fmt.Sprintf("%s/v1/popular?limit=%d", c.baseURL, limit)
	return c.get(ctx, url)
}

func (c *RecommenderClient) get(ctx context.Context, url string) (*domain.RecommenderResponse, error) {
	if err := c.bulkhead.Acquire(ctx); err != nil {
		return nil, &domain.ErrExternalService{Service: "recommender", Err: err}
	}
	defer c.bulkhead.Release()

	var recResp domain.RecommenderResponse

	result, err := c.cb.Execute(func() (any, error) {
		var innerErr error
		innerErr = resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return err
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("recommender API returned status %d", resp.StatusCode)
			}

			return json.NewDecoder(resp.Body).Decode(&recResp)
		})
		if innerErr != nil {
			return nil, innerErr
		}
		return &recResp, nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "recommender", Err: err}
	}

	return result.(*domain.RecommenderResponse), nil
}
