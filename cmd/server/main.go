package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"lease-pricing-api/internal/cache"
	"lease-pricing-api/internal/config"
	"lease-pricing-api/internal/database"
	"lease-pricing-api/internal/handler"
	"lease-pricing-api/internal/pricing"
	"lease-pricing-api/internal/repository"
	"lease-pricing-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	slog.Info("starting lease-pricing-api")

	cfg := config.Load()

	ctx := context.Background()
	slog.Info("connecting to database", "host", cfg.Database.Host, "database", cfg.Database.Name)
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Score profile: tunable weights, default v2.1 unless a file overrides
	profile := pricing.DefaultScoreProfile()
	if cfg.ScoreProfilePath != "" {
		loaded, err := pricing.LoadScoreProfile(cfg.ScoreProfilePath)
		if err != nil {
			slog.Warn("using default score profile", "path", cfg.ScoreProfilePath, "error", err)
		}
		profile = loaded
	}

	var broadQueryCache cache.Cache
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr)
		if err := redisCache.Ping(ctx); err != nil {
			slog.Warn("redis unavailable, using in-process cache", "addr", cfg.RedisAddr, "error", err)
			broadQueryCache = cache.NewMemoryCache()
		} else {
			broadQueryCache = redisCache
		}
	} else {
		broadQueryCache = cache.NewMemoryCache()
	}

	listingRepo := repository.NewListingRepo(db)

	pricingSvc := service.NewPricingService(listingRepo, pricing.NewScoreCalculator(profile))
	similarSvc := service.NewSimilarService(listingRepo, broadQueryCache)

	healthHandler := handler.NewHealthHandler(db)
	pricingHandler := handler.NewPricingHandler(pricingSvc, similarSvc)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS middleware
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	r.Get("/health", healthHandler.Check)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/listings/{id}/pricing", pricingHandler.GetPricing)
		r.Get("/listings/{id}/similar", pricingHandler.GetSimilar)
		r.Post("/score", pricingHandler.Score)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		slog.Info("server started", "port", cfg.APIPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}

	slog.Info("server stopped")
}
