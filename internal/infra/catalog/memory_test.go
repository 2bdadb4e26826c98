package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/louardi/souk-assistant-go/internal/domain"
	"github.com/louardi/souk-assistant-go/internal/infra/catalog"
)

func TestMemory_ListAllPreservesSeedOrder(t *testing.T) {
	store := catalog.NewMemoryFromSeed()

	products, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(products) == 0 {
		t.Fatal("expected seeded products")
	}
	for i := 1; i < len(products); i++ {
		if products[i].ID < products[i-1].ID {
			t.Fatalf("catalog order broken at index %d", i)
		}
	}
}

func TestMemory_ByID(t *testing.T) {
	store := catalog.NewMemoryFromSeed()

	p, err := store.ByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected product 1, got %v", err)
	}
	if p.ID != 1 {
		t.Errorf("expected id 1, got %d", p.ID)
	}

	_, err = store.ByID(context.Background(), 9999)
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemory_ByCategory(t *testing.T) {
	store := catalog.NewMemoryFromSeed()

	products, err := store.ByCategory(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(products) == 0 {
		t.Fatal("expected products in category 1")
	}
	for _, p := range products {
		if p.CategoryID != 1 {
			t.Errorf("product %d leaked from category %d", p.ID, p.CategoryID)
		}
	}
}

func TestMemory_TopRated(t *testing.T) {
	store := catalog.NewMemory([]domain.Product{
		{ID: 1, Rating: 4.0},
		{ID: 2, Rating: 4.9},
		{ID: 3, Rating: 4.5},
		{ID: 4, Rating: 3.0},
	}, nil)

	top, err := store.TopRated(context.Background(), 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 products, got %d", len(top))
	}
	if top[0].ID != 2 || top[1].ID != 3 {
		t.Errorf("expected [2 3], got [%d %d]", top[0].ID, top[1].ID)
	}
}

func TestMemory_TopRatedStableOnTies(t *testing.T) {
	store := catalog.NewMemory([]domain.Product{
		{ID: 1, Rating: 4.5},
		{ID: 2, Rating: 4.5},
		{ID: 3, Rating: 4.5},
	}, nil)

	top, _ := store.TopRated(context.Background(), 3)
	for i, want := range []int{1, 2, 3} {
		if top[i].ID != want {
			t.Fatalf("tie order broken: expected %v at %d, got %d", want, i, top[i].ID)
		}
	}
}

func TestMemory_Promotional(t *testing.T) {
	store := catalog.NewMemory([]domain.Product{
		{ID: 1, Badge: domain.BadgePromotion},
		{ID: 2},
		{ID: 3, Badge: domain.BadgePopular},
		{ID: 4, Badge: "Nouveau"},
	}, nil)

	promos, _ := store.Promotional(context.Background())
	if len(promos) != 2 {
		t.Fatalf("expected 2 promotional products, got %d", len(promos))
	}
}

func TestMemory_Search(t *testing.T) {
	store := catalog.NewMemoryFromSeed()

	results, err := store.Search(context.Background(), "bluetooth")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected a match for 'bluetooth'")
	}

	none, _ := store.Search(context.Background(), "zzzzz")
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}

	empty, _ := store.Search(context.Background(), "   ")
	if len(empty) != 0 {
		t.Errorf("expected no matches for blank query, got %d", len(empty))
	}
}

func TestMemory_Categories(t *testing.T) {
	store := catalog.NewMemoryFromSeed()

	cats, err := store.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cats) != 6 {
		t.Fatalf("expected 6 categories, got %d", len(cats))
	}

	cat, err := store.CategoryByName(context.Background(), "Électronique")
	if err != nil {
		t.Fatalf("expected Électronique, got %v", err)
	}
	if cat.ID != 1 {
		t.Errorf("expected id 1, got %d", cat.ID)
	}
}
