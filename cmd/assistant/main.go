package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/louardi/souk-assistant-go/internal/config"
	"github.com/louardi/souk-assistant-go/internal/domain"
	"github.com/louardi/souk-assistant-go/internal/handler"
	"github.com/louardi/souk-assistant-go/internal/infra/cache"
	"github.com/louardi/souk-assistant-go/internal/infra/catalog"
	"github.com/louardi/souk-assistant-go/internal/infra/client"
	"github.com/louardi/souk-assistant-go/internal/infra/observability"
	"github.com/louardi/souk-assistant-go/internal/infra/resilience"
	"github.com/louardi/souk-assistant-go/internal/port"
	"github.com/louardi/souk-assistant-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("use_postgres_catalog", cfg.UsePostgresCatalog),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Duration("session_ttl", cfg.SessionTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Int("response_limit", cfg.ResponseLimit),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "souk-assistant")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Caches ---
	recCache := cache.New[*domain.RecommendationResult](cfg.CacheTTL)
	sessionCache := cache.New[*domain.ChatSession](cfg.SessionTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("external-apis")

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	recommenderClient := client.NewRecommenderClient(httpClient, cfg.RecommenderAPIURL, cb, resilienceCfg)

	var chatBackend port.ChatBackendCaller
	if cfg.ChatBackendURL != "" {
		chatBackend = client.NewChatBackendClient(httpClient, cfg.ChatBackendURL, cb, resilienceCfg)
		logger.Info("chat backend enabled", zap.String("url", cfg.ChatBackendURL))
	} else {
		logger.Info("chat backend not configured, unknown intents resolve locally")
	}

	// --- Catalog store ---
	var products port.ProductCatalog
	var categories port.CategoryCatalog

	if cfg.UsePostgresCatalog && cfg.CatalogDSN != "" {
		logger.Info("using Postgres catalog store")
		pg, err := catalog.NewPostgres(cfg.CatalogDSN)
		if err != nil {
			logger.Fatal("failed to open catalog database", zap.Error(err))
		}
		defer pg.Close()

		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := pg.Seed(seedCtx); err != nil {
			cancel()
			logger.Fatal("failed to seed catalog database", zap.Error(err))
		}
		cancel()

		products = pg
		categories = pg
	} else {
		logger.Info("using in-memory catalog store")
		mem := catalog.NewMemoryFromSeed()
		products = mem
		categories = mem
	}

	// --- Services ---
	responder := service.NewResponder(products, categories, cfg.ResponseLimit, rand.Intn, logger)
	recommender := service.NewRecommender(recommenderClient, products, recCache, metrics, logger)
	assistant := service.NewAssistant(responder, chatBackend, sessionCache, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(assistant, recommender, products, categories, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
