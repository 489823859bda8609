package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/vapeonx/storefront/catalog"
	"github.com/vapeonx/storefront/config"
	"github.com/vapeonx/storefront/handlers"
	"github.com/vapeonx/storefront/identity"
	"github.com/vapeonx/storefront/initializers"
	"github.com/vapeonx/storefront/middleware"
	"github.com/vapeonx/storefront/session"
	"github.com/vapeonx/storefront/store"
	"github.com/vapeonx/storefront/telemetry"
)

func main() {
	configPath := flag.String("config", os.Getenv("STOREFRONT_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, err := initializers.NewLogger(cfg.Log.Level, cfg.Environment)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup("storefront", os.Stdout)
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				logger.Warn("telemetry shutdown failed", zap.Error(err))
			}
		}()
	}

	backend, health, closeBackend, err := newBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeBackend()

	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	h := &handlers.Handler{
		Carts:         store.NewCartStore(logger),
		Orders:        store.NewOrderStore(logger, store.WithCancelBeforeDelete(cfg.Orders.RequireCancelBeforeDelete)),
		Addresses:     store.NewAddressStore(logger),
		Catalog:       cat,
		Identity:      newIdentity(cfg, logger),
		Health:        health,
		Logger:        logger,
		SecureCookies: cfg.SecureCookies(),
		TokenTTL:      cfg.Auth.TokenTTL,
	}

	opts := handlers.RouterOptions{
		Backend:        backend,
		RequireUser:    cfg.Auth.RequireUser,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}
	if cfg.RateLimit.RPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		defer limiter.Stop()
		opts.RateLimiter = limiter
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           otelhttp.NewHandler(handlers.NewRouter(h, opts), "storefront"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.Int("port", cfg.Port),
			zap.String("session_backend", cfg.Session.Backend),
			zap.String("auth_provider", cfg.Auth.Provider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

// newBackend opens the configured session backend. The cookie backend has no
// server-side store, so backend and health are nil.
func newBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Store, session.Pinger, func(), error) {
	noop := func() {}

	switch cfg.Session.Backend {
	case config.BackendMemory:
		mem := session.NewMemoryStore(logger)
		return mem, mem, noop, nil

	case config.BackendRedis:
		client, err := initializers.ConnectToRedis(ctx, cfg.Session.RedisURL)
		if err != nil {
			return nil, nil, noop, err
		}
		rs := session.NewRedisStore(client)
		return rs, rs, func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		db, err := initializers.ConnectToDB(cfg.Session.DatabaseURL)
		if err != nil {
			return nil, nil, noop, err
		}
		gs := session.NewGormStore(db)
		if err := gs.Migrate(); err != nil {
			return nil, nil, noop, fmt.Errorf("migrate session table: %w", err)
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return gs, gs, closeDB, nil

	default:
		return nil, nil, noop, nil
	}
}

func newIdentity(cfg *config.Config, logger *zap.Logger) identity.Provider {
	if cfg.Auth.Provider == config.ProviderFirebase {
		return identity.NewFirebaseProvider(cfg.Auth.FirebaseAPIKey, logger)
	}
	return identity.NewLocalProvider(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)
}
