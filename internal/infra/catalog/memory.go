// Package catalog provides the product/category stores behind the
// ProductCatalog and CategoryCatalog ports: an in-memory store seeded with
// the demo storefront, and a Postgres adapter for a real catalog.
package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/louardi/souk-assistant-go/internal/domain"
)

// Memory is a read-mostly in-memory catalog. Listing order is the seed
// order; all returned slices are copies, so callers can truncate or re-sort
// without touching the store.
type Memory struct {
	mu         sync.RWMutex
	products   []domain.Product
	categories []domain.Category
}

// NewMemory creates a store with the given catalog snapshot.
func NewMemory(products []domain.Product, categories []domain.Category) *Memory {
	return &Memory{products: products, categories: categories}
}

// NewMemoryFromSeed creates a store with the built-in demo catalog.
func NewMemoryFromSeed() *Memory {
	return NewMemory(SeedProducts(), SeedCategories())
}

// ListAll returns every product in catalog order.
func (m *Memory) ListAll(_ context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Product(nil), m.products...), nil
}

// ByID looks a product up by its numeric id.
func (m *Memory) ByID(_ context.Context, id int) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ID == id {
			prod := p
			return &prod, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "product", ID: strconv.Itoa(id)}
}

// ByCategory returns the category's products in catalog order.
func (m *Memory) ByCategory(_ context.Context, categoryID int) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Product
	for _, p := range m.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

// TopRated returns up to limit products ordered by rating, best first.
// The sort is stable so equally-rated products keep catalog order.
func (m *Memory) TopRated(_ context.Context, limit int) ([]domain.Product, error) {
	m.mu.RLock()
	sorted := append([]domain.Product(nil), m.products...)
	m.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// Promotional returns products carrying a promotion or popularity badge.
func (m *Memory) Promotional(_ context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Product
	for _, p := range m.products {
		if p.Badge == domain.BadgePromotion || p.Badge == domain.BadgePopular {
			out = append(out, p)
		}
	}
	return out, nil
}

// Search does a case-insensitive substring match over name and description.
func (m *Memory) Search(_ context.Context, query string) ([]domain.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Product
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListCategories returns every category in taxonomy order.
func (m *Memory) ListCategories(_ context.Context) ([]domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Category(nil), m.categories...), nil
}

// CategoryByName looks a category up by its exact display name.
func (m *Memory) CategoryByName(_ context.Context, name string) (*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.categories {
		if c.Name == name {
			cat := c
			return &cat, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "category", ID: name}
}
