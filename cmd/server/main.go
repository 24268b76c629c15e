package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wist/backend/config"
	httpDelivery "github.com/wist/backend/internal/delivery/http"
	"github.com/wist/backend/internal/domain"
	"github.com/wist/backend/internal/infrastructure/auth"
	"github.com/wist/backend/internal/infrastructure/cache"
	"github.com/wist/backend/internal/infrastructure/database"
	"github.com/wist/backend/internal/infrastructure/events"
	"github.com/wist/backend/internal/infrastructure/firecrawl"
	"github.com/wist/backend/internal/logging"
	"github.com/wist/backend/internal/usecase"
)

const shutdownTimeout = 15 * time.Second

type closableCache interface {
	domain.CacheRepository
	Close() error
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.New(cfg.Server.Environment, cfg.Log.Level)
	slog.SetDefault(logger)

	logger.Info("starting Wist backend",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"database", cfg.Database.Driver,
		"cache", cfg.Cache.Type,
		"events", cfg.Events.Enabled)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize infrastructure dependencies
	db, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.DSN, cfg.Database.MaxOpenConns)
	if err != nil {
		return err
	}
	defer db.Close()

	previewCache, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer previewCache.Close()
	logger.Info("cache ready", "type", cfg.Cache.Type, "ttl", cfg.Cache.TTL)

	scrapeClient := firecrawl.NewClient(&http.Client{}, cfg.Firecrawl.APIKey, cfg.Firecrawl.BaseURL)
	defer scrapeClient.Close()
	scrapeClient.SetLogger(logger)
	scrapeClient.SetRateLimit(cfg.RateLimit.Upstream, upstreamBurst(cfg.RateLimit.Upstream))
	scrapeClient.SetDebug(cfg.Firecrawl.Debug)

	publisher, err := newPublisher(cfg.Events)
	if err != nil {
		return err
	}
	defer publisher.Close()

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	// Initialize usecase layer
	wishlistRepo := database.NewWishlistRepository(db)
	authService := usecase.NewAuthService(
		database.NewUserRepository(db),
		auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		tokens,
		logger,
	)
	itemService := usecase.NewWishlistItemService(
		wishlistRepo,
		database.NewItemRepository(db),
		scrapeClient,
		publisher,
		logger,
	)
	scrapeService := usecase.NewScrapeService(
		scrapeClient,
		previewCache,
		usecase.ScrapeServiceConfig{CacheTTL: cfg.Cache.TTL},
		logger,
	)

	handler := httpDelivery.NewHandler(
		authService,
		usecase.NewWishlistService(wishlistRepo),
		itemService,
		scrapeService,
		db,
		logger,
	)
	router := httpDelivery.SetupRouter(cfg, handler, authService, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newCache(ctx context.Context, cfg config.CacheConfig) (closableCache, error) {
	if cfg.Type == "redis" {
		return cache.NewRedisCache(ctx, cfg.RedisURL)
	}
	return cache.NewMemoryCache(), nil
}

func newPublisher(cfg config.EventsConfig) (domain.ItemEventPublisher, error) {
	if !cfg.Enabled {
		return events.NoopPublisher{}, nil
	}
	return events.NewKafkaPublisher(cfg.Brokers, cfg.Topic)
}

// upstreamBurst allows short bursts of roughly a tenth of the per-minute budget
func upstreamBurst(perMinute int) int {
	if burst := perMinute / 10; burst > 1 {
		return burst
	}
	return 1
}
