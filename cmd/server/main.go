package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/chi-demo/middleware"
	"github.com/tendant/simple-cms/pkg/simplecms/api"
	"github.com/tendant/simple-cms/pkg/simplecms/config"
	"github.com/tendant/simple-cms/pkg/simplecms/telemetry"
)

func main() {
	configFile := flag.String("config", os.Getenv("CONFIG_FILE"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(config.WithFile(*configFile), config.WithEnv())
	if err != nil {
		slog.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if cfg.Environment == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	slog.SetDefault(logger)

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		slog.Error("Failed to set up tracing", "err", err)
		os.Exit(1)
	}

	rt, err := cfg.Build(ctx, logger)
	if err != nil {
		slog.Error("Failed to build repository", "err", err)
		os.Exit(1)
	}
	defer rt.Close()

	if err := rt.Seed(ctx); err != nil {
		slog.Error("Failed to seed repository", "err", err)
		os.Exit(1)
	}

	handler := api.New(rt.Repository, api.NewAuth(cfg.JWTSecret),
		api.WithLogger(logger),
		api.WithTokenTTL(cfg.TokenTTL))

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	server.R.Mount("/api/v1", handler.Routes())

	if cfg.APIKeySHA256 != "" {
		apiKeyMiddleware, err := middleware.ApiKeyMiddleware(middleware.ApiKeyConfig{
			APIKeys: map[string]string{"admin": cfg.APIKeySHA256},
		})
		if err != nil {
			slog.Error("Failed initialize API Key middleware", "err", err)
			os.Exit(1)
		}
		server.R.Route("/admin", func(r chi.Router) {
			r.Use(apiKeyMiddleware)
			r.Post("/reindex", func(w http.ResponseWriter, r *http.Request) {
				if err := rt.Core.Reindex(r.Context()); err != nil {
					slog.Error("Reindex failed", "err", err)
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				render.PlainText(w, r, http.StatusText(http.StatusOK))
			})
		})
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.R,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "err", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Tracing shutdown failed", "err", err)
	}
	slog.Info("Server exiting")
}
