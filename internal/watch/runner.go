package watch

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/watchtower/internal/config"
	"github.com/hamed0406/watchtower/internal/domain"
	"github.com/hamed0406/watchtower/internal/notify"
	"github.com/hamed0406/watchtower/internal/probe"
	"github.com/hamed0406/watchtower/internal/report"
	"github.com/hamed0406/watchtower/internal/scheduler"
)

// Runner executes one sweep: fan-out, aggregate, notify if anything failed.
// It holds no state between runs.
type Runner struct {
	Logger    *zap.Logger
	FanOut    *scheduler.FanOut
	Notifier  notify.Notifier // nil behaves as an unconfigured sink
	Diagnoser *probe.Diagnoser
	Now       func() time.Time
}

func NewRunner(logger *zap.Logger, fan *scheduler.FanOut, n notify.Notifier, d *probe.Diagnoser) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Logger: logger, FanOut: fan, Notifier: n, Diagnoser: d, Now: time.Now}
}

// Result is what one sweep produced. Summary is authoritative whatever
// happened to the notification.
type Result struct {
	RunID     string
	Summary   domain.RunSummary
	Notified  bool  // a notification was attempted
	NotifyErr error // nil when delivered or not attempted
}

// Run sweeps targets. The only error is a configuration error (no targets),
// returned before any probe starts.
func (r *Runner) Run(ctx context.Context, targets []domain.Target) (Result, error) {
	if len(targets) == 0 {
		return Result{}, config.ErrNoTargets
	}

	res := Result{RunID: uuid.NewString()}
	log := r.Logger.With(zap.String("run_id", res.RunID))
	start := time.Now()
	log.Info("sweep_started", zap.Int("targets", len(targets)))

	outcomes := r.FanOut.RunAll(ctx, targets)
	res.Summary = report.Aggregate(outcomes, r.now())

	log.Info("sweep_aggregated",
		zap.Int("total_checked", res.Summary.TotalChecked),
		zap.Int("successful", res.Summary.Successful),
		zap.Int("failed", res.Summary.Failed),
		zap.Duration("elapsed", time.Since(start)),
	)
	for _, f := range res.Summary.Failures() {
		log.Warn("target_down",
			zap.String("name", f.Target.Name),
			zap.String("url", f.Target.URL),
			zap.String("error", f.Kind.String()),
			zap.Int("status", f.StatusCode),
			zap.Int64("response_time_ms", f.ResponseTime.Milliseconds()),
		)
	}

	if !report.ShouldNotify(res.Summary) {
		log.Info("notify_not_needed")
		return res, nil
	}

	r.diagnose(ctx, log, res.Summary)

	res.Notified = true
	res.NotifyErr = r.notify(ctx, res.Summary)
	switch {
	case res.NotifyErr == nil:
		log.Info("notify_sent", zap.Int("failed", res.Summary.Failed))
	case errors.Is(res.NotifyErr, notify.ErrSinkUnconfigured):
		log.Warn("notify_skipped", zap.String("reason", "sink_unconfigured"))
	default:
		log.Error("notify_failed", zap.Error(res.NotifyErr))
	}
	return res, nil
}

func (r *Runner) notify(ctx context.Context, s domain.RunSummary) error {
	if r.Notifier == nil {
		return notify.ErrSinkUnconfigured
	}
	return r.Notifier.Notify(ctx, s)
}

// diagnose logs a DNS lookup for every connection failure.
func (r *Runner) diagnose(ctx context.Context, log *zap.Logger, s domain.RunSummary) {
	if r.Diagnoser == nil {
		return
	}
	var g errgroup.Group
	for _, f := range s.Failures() {
		if f.Kind != domain.ErrConnectionFailure {
			continue
		}
		g.Go(func() error {
			dns := r.Diagnoser.Diagnose(ctx, f.Target.URL)
			log.Info("dns_check",
				zap.String("name", f.Target.Name),
				zap.String("host", dns.Host),
				zap.String("class", string(dns.Class)),
				zap.Int("ips", len(dns.IPs)),
				zap.Strings("nameservers", dns.Nameservers),
				zap.String("cname", dns.CNAME),
				zap.String("resolver_error", dns.ResolverError),
			)
			return nil
		})
	}
	_ = g.Wait()
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// FromConfig wires the production pipeline: HTTP probes, Slack sink, DNS
// diagnosis of connection failures.
func FromConfig(cfg config.Config, logger *zap.Logger) *Runner {
	fan := scheduler.NewFanOut(logger, probe.NewHTTPChecker(cfg.UserAgent), cfg.MaxConcurrentChecks)
	return NewRunner(logger, fan, notify.NewSlack(cfg.SlackWebhook, cfg.NotifyTimeout), probe.NewDiagnoser())
}
