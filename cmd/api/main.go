package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hamed0406/watchtower/internal/config"
	"github.com/hamed0406/watchtower/internal/domain"
	"github.com/hamed0406/watchtower/internal/httpapi"
	"github.com/hamed0406/watchtower/internal/logging"
	"github.com/hamed0406/watchtower/internal/scheduler"
	"github.com/hamed0406/watchtower/internal/watch"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := watch.FromConfig(cfg, logger)
	targets := func() ([]domain.Target, error) { return config.LoadTargets(cfg.TargetsFile) }

	if cfg.SlackWebhook == "" {
		logger.Warn("slack_webhook_missing", zap.String("hint", "set SLACK_WEBHOOK_URL to receive alerts"))
	}

	if cfg.Scheduled() {
		job, err := scheduler.NewJob(ctx, logger, scheduler.JobConfig{
			Cron:     cfg.CheckCron,
			Interval: cfg.CheckInterval,
		}, func(ctx context.Context) {
			ts, err := targets()
			if err != nil {
				logger.Error("targets_load_failed", zap.Error(err))
				return
			}
			_, _ = runner.Run(ctx, ts)
		})
		if err != nil {
			logger.Fatal("schedule_invalid", zap.Error(err))
		}
		job.Start()
		defer func() { _ = job.Stop() }()
	}

	api := httpapi.NewServer(logger, runner, targets)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Router(cfg.APIKeys, cfg.RunRPM, cfg.RunBurst),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("api_listen", zap.String("addr", cfg.Addr), zap.Bool("scheduled", cfg.Scheduled()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("api_listen_failed", zap.Error(err))
	}
	logger.Info("api_stopped")
}
