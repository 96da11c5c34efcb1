// Package main is the entry point for the travel planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/travel-planner/internal/auth"
	"github.com/pkordes/travel-planner/internal/config"
	"github.com/pkordes/travel-planner/internal/destinations"
	"github.com/pkordes/travel-planner/internal/events"
	"github.com/pkordes/travel-planner/internal/handler"
	"github.com/pkordes/travel-planner/internal/logging"
	"github.com/pkordes/travel-planner/internal/middleware"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/internal/service"
	"github.com/pkordes/travel-planner/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore.Close()
	slog.Info("storage ready", "driver", cfg.StorageDriver)

	// Every write is published so /events subscribers see cross-page changes.
	bus := events.NewBus()
	kv := repo.NewNotifyingKV(store, bus)

	// --- Services ---------------------------------------------------------
	hasher, err := auth.NewHasher(cfg.PasswordHashing)
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	catalog := destinations.Default()
	opts := []service.Option{service.WithLogger(logger)}

	authSvc := service.NewAuthService(kv, hasher, cfg.SessionDuration, opts...)
	srvDeps := handler.Deps{
		Auth:         authSvc,
		Checklist:    service.NewChecklistService(kv, opts...),
		Itinerary:    service.NewItineraryService(kv, opts...),
		Countdown:    service.NewCountdownService(kv, opts...),
		Wishlist:     service.NewWishlistService(kv, authSvc, catalog, opts...),
		Destinations: catalog,
		Events:       bus,
		OpenAPI:      spec.OpenAPI,
		Log:          logger,
	}

	// --- Metrics ----------------------------------------------------------
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit → metrics.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(middleware.NewMetrics(reg))

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Mount("/", handler.NewServer(srvDeps).Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout is lifted per request by the /events stream.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore opens the key-value backend selected by STORAGE_DRIVER and applies
// its migrations. The returned closer releases the backend.
func openStore(ctx context.Context, cfg config.Config) (repo.KVRepo, io.Closer, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		// pgxpool manages a pool of Postgres connections.
		// New() does not open connections immediately; the first query does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create database pool: %w", err)
		}
		// Verify the DB is reachable before accepting traffic.
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		// goose runs over database/sql; borrow a handle on the same pool.
		db := stdlib.OpenDBFromPool(pool)
		defer db.Close()
		if err := repo.Migrate(ctx, repo.DialectPostgres, db); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo.NewPostgresKV(pool), closerFunc(func() error { pool.Close(); return nil }), nil

	case config.DriverSQLite:
		db, err := repo.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewSQLiteKV(db), db, nil

	default:
		return repo.NewMemoryKV(), closerFunc(func() error { return nil }), nil
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
