package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"moviecatalog/pkg/api"
	"moviecatalog/pkg/catalog"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/database"
	"moviecatalog/pkg/logging"
	"moviecatalog/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	gin.SetMode(cfg.Server.Mode)

	logging.Info().Str("store", cfg.Store.Driver).Msg("Starting catalog service...")

	handler, err := buildHandler(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialise catalog store")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, api.NewRouter(handler)); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
	logging.Info().Msg("Catalog service stopped")
}

func buildHandler(cfg *config.Config) (*api.Handler, error) {
	opts := []catalog.Option{catalog.WithObserver(metrics.CatalogObserver{})}

	switch cfg.Store.Driver {
	case config.StoreSQLite:
		db, err := database.OpenCatalogDB(cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		store := database.NewMovieStore(db)
		return api.NewHandler(catalog.New(store, opts...), store), nil
	case config.StoreMemory:
		return api.NewHandler(catalog.New(catalog.NewMemoryStore(), opts...), nil), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func run(ctx context.Context, cfg *config.Config, router http.Handler) error {
	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("Catalog service starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("Shutting down catalog service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
