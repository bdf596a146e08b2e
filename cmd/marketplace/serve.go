package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-client/logger"
	"marketplace-client/middleware"
	"marketplace-client/routes"
	"marketplace-client/session"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the storefront pages",
	Long: `Serve the sign-in and home pages to browsers. Each browser gets its own
session; tokens are kept in Redis when REDIS_URL is set, in memory otherwise.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "override listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := app.cfg
	if serveAddr != "" {
		cfg.StorefrontAddr = serveAddr
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := cmd.Context()
	store := session.NewMemoryStore()
	if cfg.RedisURL != "" {
		client, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		defer client.Close()
		store = session.NewRedisStore(client, cfg.SessionTTL)
		logger.Info(ctx, "Connected to Redis")
	}

	var observer middleware.RequestObserver
	if app.metrics != nil {
		observer = app.metrics
	}

	router := routes.NewRouter(routes.NewStorefront(app.api, cfg.Locations), routes.Options{
		Store:         store,
		CORSOrigins:   cfg.CORSOrigins,
		SecureCookies: cfg.Env == "production",
		Observer:      observer,
	})

	srv := &http.Server{
		Addr:              cfg.StorefrontAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Storefront started",
			zap.String("addr", cfg.StorefrontAddr),
			zap.String("api_url", app.api.BaseURL()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("storefront server error: %w", err)
		}
		return nil
	case <-quit:
	}

	logger.Info(ctx, "Shutting down storefront...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("storefront forced to shutdown: %w", err)
	}
	logger.Info(ctx, "Storefront exited cleanly")
	return nil
}
