package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/louardi/souk-assistant-go/internal/domain"
	"github.com/louardi/souk-assistant-go/internal/port"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ============================================================
// 2. Catalogue
// ============================================================

// catalogSnapshotHandler returns products and categories in one payload,
// fetched concurrently. The storefront loads this once at startup.
func catalogSnapshotHandler(products port.ProductCatalog, categories port.CategoryCatalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/catalog")
		defer span.End()

		var (
			allProducts   []domain.Product
			allCategories []domain.Category
		)

		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			allProducts, err = products.ListAll(gCtx)
			return err
		})
		g.Go(func() error {
			var err error
			allCategories, err = categories.ListCategories(gCtx)
			return err
		})
		if err := g.Wait(); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"products":   allProducts,
			"categories": allCategories,
		})
	}
}

func listProductsHandler(products port.ProductCatalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/products")
		defer span.End()

		list, err := products.ListAll(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		// Optional ?category_id= filter, e.g. ?category_id=4
		if catFilter := r.URL.Query().Get("category_id"); catFilter != "" {
			if catID, convErr := strconv.Atoi(catFilter); convErr == nil {
				span.SetAttributes(attribute.Int("filter.category_id", catID))
				filtered := make([]domain.Product, 0, len(list))
				for _, p := range list {
					if p.CategoryID == catID {
						filtered = append(filtered, p)
					}
				}
				list = filtered
			}
		}

		writeJSON(w, http.StatusOK, map[string]any{"products": list})
	}
}

func getProductHandler(products port.ProductCatalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/products/{productId}")
		defer span.End()

		id, err := strconv.Atoi(chi.URLParam(r, "productId"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "productId must be numeric")
			return
		}
		span.SetAttributes(attribute.Int("product.id", id))

		product, err := products.ByID(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, product)
	}
}

func topProductsHandler(products port.ProductCatalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/products/top")
		defer span.End()

		limit := parseLimit(r, 4, 20)
		list, err := products.TopRated(ctx, limit)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": list})
	}
}

func promotionalProductsHandler(products port.ProductCatalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/products/promotional")
		defer span.End()

		list, err := products.Promotional(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": list})
	}
}

func searchProductsHandler(products port.ProductCatalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/products/search")
		defer span.End()

		query := r.URL.Query().Get("q")
		if strings.TrimSpace(query) == "" {
			writeError(w, http.StatusBadRequest, "q is required")
			return
		}
		span.SetAttributes(attribute.String("search.query", query))

		list, err := products.Search(ctx, query)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if list == nil {
			list = []domain.Product{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": list, "query": query})
	}
}

func listCategoriesHandler(categories port.CategoryCatalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/categories")
		defer span.End()

		list, err := categories.ListCategories(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"categories": list})
	}
}

func productsByCategoryHandler(products port.ProductCatalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/categories/{categoryId}/products")
		defer span.End()

		id, err := strconv.Atoi(chi.URLParam(r, "categoryId"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "categoryId must be numeric")
			return
		}
		span.SetAttributes(attribute.Int("category.id", id))

		list, err := products.ByCategory(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": list})
	}
}
