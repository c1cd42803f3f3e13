package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

var ErrNoSchedule = errors.New("scheduler: neither cron expression nor interval set")

type JobConfig struct {
	Cron           string        // five-field crontab, e.g. "0 * * * *"; wins over Interval
	Interval       time.Duration // fixed period when Cron is empty
	RunImmediately bool
}

// Job triggers a sweep on a schedule. Ticks never overlap: a tick that comes
// due while the previous sweep is still running is skipped.
type Job struct {
	logger    *zap.Logger
	scheduler gocron.Scheduler
}

func NewJob(ctx context.Context, logger *zap.Logger, cfg JobConfig, task func(context.Context)) (*Job, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var def gocron.JobDefinition
	switch {
	case cfg.Cron != "":
		def = gocron.CronJob(cfg.Cron, false)
	case cfg.Interval > 0:
		def = gocron.DurationJob(cfg.Interval)
	default:
		return nil, ErrNoSchedule
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	opts := []gocron.JobOption{
		gocron.WithName("sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if cfg.RunImmediately {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	_, err = s.NewJob(def, gocron.NewTask(func() {
		if ctx.Err() != nil {
			return
		}
		logger.Debug("schedule_tick")
		task(ctx)
	}), opts...)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("create sweep job: %w", err)
	}

	return &Job{logger: logger, scheduler: s}, nil
}

func (j *Job) Start() {
	j.scheduler.Start()
	j.logger.Info("schedule_started")
}

// Stop waits for a running sweep to finish.
func (j *Job) Stop() error {
	if err := j.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	j.logger.Info("schedule_stopped")
	return nil
}
