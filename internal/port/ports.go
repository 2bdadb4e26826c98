// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/louardi/souk-assistant-go/internal/domain"
)

// ProductCatalog is the read-only view of the product catalog the assistant
// works against. Implemented by the in-memory seed store and the Postgres
// adapter; the assistant never writes through it.
type ProductCatalog interface {
	ListAll(ctx context.Context) ([]domain.Product, error)
	ByID(ctx context.Context, id int) (*domain.Product, error)
	ByCategory(ctx context.Context, categoryID int) ([]domain.Product, error)
	TopRated(ctx context.Context, limit int) ([]domain.Product, error)
	Promotional(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
}

// CategoryCatalog lists the storefront categories.
type CategoryCatalog interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CategoryByName(ctx context.Context, name string) (*domain.Category, error)
}

// RecommenderCaller invokes the remote recommendation service.
// All three calls may fail; callers are expected to degrade to a local
// fallback rather than surfacing the error.
type RecommenderCaller interface {
	RecommendForUser(ctx context.Context, userID string, limit int) (*domain.RecommenderResponse, error)
	SimilarTo(ctx context.Context, productID, limit int) (*domain.RecommenderResponse, error)
	Popular(ctx context.Context, limit int) (*domain.RecommenderResponse, error)
}

// ChatBackendCaller forwards a message to the remote chat service.
type ChatBackendCaller interface {
	SendMessage(ctx context.Context, req *domain.ChatBackendRequest) (*domain.ChatBackendResponse, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
