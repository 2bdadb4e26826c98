package handler

import (
	"net/http"
	"strconv"

	"github.com/louardi/souk-assistant-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// 3. Recommandations
//
// These endpoints never fail over a dead recommendation engine: the
// service degrades to the local top-rated list, so the only errors left
// to map are bad input.
// ============================================================

func userRecommendationsHandler(recommender *service.Recommender, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/recommendations/{userId}")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		if userID == "" {
			writeError(w, http.StatusBadRequest, "userId is required")
			return
		}
		span.SetAttributes(attribute.String("user.id", userID))

		limit := parseLimit(r, 4, 20)
		writeJSON(w, http.StatusOK, recommender.ForUser(ctx, userID, limit))
	}
}

func similarProductsHandler(recommender *service.Recommender, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/products/{productId}/similar")
		defer span.End()

		id, err := strconv.Atoi(chi.URLParam(r, "productId"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "productId must be numeric")
			return
		}
		span.SetAttributes(attribute.Int("product.id", id))

		limit := parseLimit(r, 4, 20)
		writeJSON(w, http.StatusOK, recommender.SimilarTo(ctx, id, limit))
	}
}

func popularRecommendationsHandler(recommender *service.Recommender, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/recommendations/popular")
		defer span.End()

		limit := parseLimit(r, 4, 20)
		writeJSON(w, http.StatusOK, recommender.Popular(ctx, limit))
	}
}
