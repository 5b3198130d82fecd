package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ivanlukomskiy/chrono-capture/internal/app"
	"github.com/ivanlukomskiy/chrono-capture/internal/domain/cycle"
	"github.com/ivanlukomskiy/chrono-capture/internal/domain/delivery"
	infracapture "github.com/ivanlukomskiy/chrono-capture/internal/infra/capture"
	"github.com/ivanlukomskiy/chrono-capture/internal/infra/config"
	idb "github.com/ivanlukomskiy/chrono-capture/internal/infra/database"
	"github.com/ivanlukomskiy/chrono-capture/internal/infra/logger"
	"github.com/ivanlukomskiy/chrono-capture/internal/infra/scheduler"
	"github.com/ivanlukomskiy/chrono-capture/internal/infra/server"
	"github.com/ivanlukomskiy/chrono-capture/internal/infra/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.Environment)
	log := logger.Log
	log.Infof("chrono-capture starting. Capture time: %s, channel: %s, environment: %s",
		cfg.CaptureTime, cfg.TelegramChannel, cfg.Environment)

	// Cycle journal: Postgres when configured, otherwise a no-op.
	var journal cycle.Repository = idb.NewNopCycleRepository()
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to database: %v", err)
		}
		defer db.Close()
		journal = idb.NewPostgresCycleRepository(db)
		log.Info("Cycle journal enabled.")
	}

	board := app.NewStatusBoard()
	store := config.NewEnvStore(cfg)
	client := telegram.NewClient(cfg.TelegramAPIURL, cfg.HTTPTimeout)

	notifiers := delivery.MultiNotifier{telegram.NewLogNotifier()}
	if cfg.NotifyTelegram {
		notifiers = append(notifiers, telegram.NewChannelNotifier(client, func() (delivery.Config, error) {
			snap, err := store.Snapshot()
			return snap.Delivery, err
		}))
		log.Info("Channel notifier enabled.")
	}

	provider := infracapture.NewCommandProvider(cfg.CaptureCommand, cfg.ScratchDir)
	service := app.NewCycleService(provider, client, notifiers, journal, board)

	captureScheduler := scheduler.New(service, store, board)
	captureScheduler.Start()

	janitor := scheduler.NewJanitor(cfg.ScratchDir, cfg.CleanupCronSpec)
	if err := janitor.Start(); err != nil {
		log.Fatalf("FATAL: Could not start scratch janitor: %v", err)
	}

	srv := server.New(cfg.HTTPAddr, board, captureScheduler, store, journal)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Status server failed: %v", err)
		}
	}()

	log.Info("Application setup complete.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("Status server shutdown: %v", err)
	}
	janitor.Stop()
	captureScheduler.Stop()
	log.Info("Application shut down gracefully.")
}
