package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/server"
	"storefront/internal/session"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.SessionSecret == config.DefaultSessionSecret {
		zlog.Warn("SESSION_SECRET not set, using the default fallback secret")
	}

	catalogClient := catalog.NewClient(cfg.CatalogURL, cfg.CatalogTimeout)
	store := session.NewStore(session.Config{
		Secret: []byte(cfg.SessionSecret),
		Secure: cfg.Production(),
	})
	cartService := cart.New(store, catalogClient)

	handlers, err := server.NewHandlers(catalogClient, cartService, zlog)
	if err != nil {
		zlog.Fatal("failed to build handlers", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.NewRouter(handlers, zlog, cfg.RequestTimeout),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("storefront starting", zap.String("port", cfg.Port), zap.String("catalog", cfg.CatalogURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}
