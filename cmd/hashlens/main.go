package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hashlens/hashlens/api"
	"github.com/hashlens/hashlens/api/handler"
	"github.com/hashlens/hashlens/cache"
	"github.com/hashlens/hashlens/config"
	"github.com/hashlens/hashlens/graph"
	"github.com/hashlens/hashlens/scraper"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	// .env is optional; absence is not an error.
	_ = godotenv.Load()
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("hashlens starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
	)
	if cfg.Graph.BusinessID == "" || cfg.Graph.AccessToken == "" {
		slog.Warn("graph API credentials missing; hashtag lookups will fail",
			"business_id_set", cfg.Graph.BusinessID != "",
			"access_token_set", cfg.Graph.AccessToken != "",
		)
	}

	// ── 3. Initialise collaborators ─────────────────────────────────
	gc := graph.NewClient(cfg.Graph)
	hashtagCache := cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	sc := scraper.New(cfg.Browser, cfg.Scraper)

	deps := handler.StreamDeps{
		Graph:    gc,
		Hashtags: hashtagCache,
		Process:  sc.PostAuthorAndProfile,
		Delay:    cfg.Scraper.PostDelay,
		Webhook:  cfg.Webhook,
	}

	// ── 4. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(deps, gc, cfg, startTime)

	// ── 5. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 6. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight streams 10 seconds to finish their current post.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("hashlens stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
