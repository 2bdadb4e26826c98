package handler

import (
	"net/http"
	"time"

	"github.com/louardi/souk-assistant-go/internal/domain"
	"github.com/louardi/souk-assistant-go/internal/infra/observability"
	"github.com/louardi/souk-assistant-go/internal/port"
	"github.com/louardi/souk-assistant-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract defined for the storefront chat widget.
func NewRouter(
	assistant *service.Assistant,
	recommender *service.Recommender,
	products port.ProductCatalog,
	categories port.CategoryCatalog,
	metrics *observability.Metrics,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(products, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// 1. 💬 Chat
		// =============================================
		r.Post("/chat/message", chatMessageHandler(assistant, logger))
		r.Get("/chat/sessions/{sessionId}/messages", chatHistoryHandler(assistant, logger))
		r.Delete("/chat/sessions/{sessionId}/messages", chatClearHandler(assistant, logger))

		// =============================================
		// 2. 🛍 Catalogue
		// =============================================
		r.Get("/catalog", catalogSnapshotHandler(products, categories, logger))
		r.Get("/products", listProductsHandler(products, logger))
		r.Get("/products/top", topProductsHandler(products, logger))
		r.Get("/products/promotional", promotionalProductsHandler(products, logger))
		r.Get("/products/search", searchProductsHandler(products, logger))
		r.Get("/products/{productId}", getProductHandler(products, logger))
		r.Get("/categories", listCategoriesHandler(categories, logger))
		r.Get("/categories/{categoryId}/products", productsByCategoryHandler(products, logger))

		// =============================================
		// 3. ✨ Recommandations
		// =============================================
		r.Get("/recommendations/popular", popularRecommendationsHandler(recommender, logger))
		r.Get("/recommendations/{userId}", userRecommendationsHandler(recommender, logger))
		r.Get("/products/{productId}/similar", similarProductsHandler(recommender, logger))

		// =============================================
		// 4. 📊 Métriques
		// =============================================
		r.Get("/metrics/assistant", assistantMetricsHandler(metrics, logger))
	})

	return r
}

// ============================================================
// Health & metrics
// ============================================================

// healthzHandler probes the catalog store so a dead backing store shows up
// as degraded rather than a hard failure.
func healthzHandler(products port.ProductCatalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "souk-assistant", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		start := time.Now()
		_, err := products.ListAll(ctx)
		latency := time.Since(start).Milliseconds()
		status := "healthy"
		if err != nil {
			status = "degraded"
			logger.Warn("catalog health probe failed", zap.Error(err))
		}
		services = append(services, domain.ServiceHealth{
			Name: "catalog", Status: status, LatencyMs: latency, LastChecked: now,
		})

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func assistantMetricsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetSnapshot())
	}
}
