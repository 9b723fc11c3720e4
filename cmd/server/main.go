package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/trendpulse/trendpulse/internal/app"
	"github.com/trendpulse/trendpulse/internal/classify"
	"github.com/trendpulse/trendpulse/internal/config"
	"github.com/trendpulse/trendpulse/internal/hub"
	"github.com/trendpulse/trendpulse/internal/logging"
	"github.com/trendpulse/trendpulse/internal/scheduler"
	"github.com/trendpulse/trendpulse/internal/server"
	"github.com/trendpulse/trendpulse/internal/summary"
	"github.com/trendpulse/trendpulse/internal/trends"
)

func setupConfig() *config.Config {
	// Best-effort: a missing .env file is fine in production.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func runGracefulShutdown(srv *server.Server, sched *scheduler.Scheduler, h *hub.Hub) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		sched.Stop()
		h.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	store := trends.NewStore(clock)
	if err := trends.Seed(context.Background(), store); err != nil {
		slog.Error("Failed to seed trends", "error", err)
		os.Exit(1)
	}

	h := hub.NewHub(clock, cfg.MaxClients)

	classifier := classify.New(nil)
	deltas := scheduler.NewRandomDeltas(0)
	sched := scheduler.New(store, classifier, h, clock, deltas, scheduler.Intervals{
		Refresh:  cfg.RefreshInterval,
		Metrics:  cfg.MetricsInterval,
		Activity: cfg.ActivityInterval,
	})
	sched.Start()

	summarizer := summary.NewClient(cfg.SummarizerURL)
	appSvc := app.NewService(store, summarizer, h, clock)

	srv := server.NewServer(cfg, appSvc, h)

	done := runGracefulShutdown(srv, sched, h)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
