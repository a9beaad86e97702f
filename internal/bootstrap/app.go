package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/unievents/internal/infra/config"
)

const (
	seedTimeout     = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Seeder loads startup data before the server accepts traffic.
type Seeder func(ctx context.Context) error

// App encapsulates the HTTP server lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
	seed   Seeder
}

// NewApp is used by Wire to build the runnable app. seed may be nil.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, seed Seeder) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, seed: seed}
}

// Run seeds the stores, starts the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	if a.seed != nil {
		seedCtx, cancel := context.WithTimeout(ctx, seedTimeout)
		err := a.seed(seedCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
