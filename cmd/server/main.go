package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"listing-pipeline/internal/config"
	"listing-pipeline/internal/logging"
	"listing-pipeline/internal/pipeline"
	"listing-pipeline/internal/search"
	"listing-pipeline/internal/storage"
	"listing-pipeline/internal/warehouse"
	"listing-pipeline/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"warehouse_table", cfg.Warehouse.Table,
		"search_index", cfg.Search.Index,
		"run_timeout", cfg.Pipeline.RunTimeout,
	)

	// Parse and configure the warehouse connection pool
	poolConfig, err := pgxpool.ParseConfig(cfg.Warehouse.URL)
	if err != nil {
		slog.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}
	poolConfig.MaxConns = int32(cfg.Warehouse.MaxConns)
	poolConfig.MinConns = int32(cfg.Warehouse.MinConns)
	poolConfig.MaxConnLifetime = cfg.Warehouse.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Warehouse.MaxConnIdleTime

	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		slog.Error("failed to connect to warehouse", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping warehouse", "error", err)
		os.Exit(1)
	}

	// Log which database we connected to
	if u, err := url.Parse(cfg.Warehouse.URL); err == nil {
		slog.Info("connected to warehouse", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to warehouse")
	}

	loader := warehouse.NewLoader(pool, cfg.Warehouse.Table)
	if err := loader.EnsureSchema(ctx); err != nil {
		slog.Error("failed to ensure warehouse schema", "error", err)
		os.Exit(1)
	}

	// Search engine client
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Search.Addresses,
		Username:  cfg.Search.Username,
		Password:  cfg.Search.Password,
	})
	if err != nil {
		slog.Error("failed to create search client", "error", err)
		os.Exit(1)
	}
	indexer := search.NewIndexer(esClient, cfg.Search.Index)

	// Object store
	store, err := storage.NewObjectStore(cfg.Storage.Region, cfg.Storage.Endpoint)
	if err != nil {
		slog.Error("failed to create object store client", "error", err)
		os.Exit(1)
	}

	service := pipeline.NewService(store, loader, indexer)
	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
