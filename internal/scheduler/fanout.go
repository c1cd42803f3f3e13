package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/watchtower/internal/domain"
	"github.com/hamed0406/watchtower/internal/probe"
)

// FanOut runs one probe per target concurrently.
type FanOut struct {
	Logger      *zap.Logger
	Checker     probe.Checker
	Concurrency int // 0 means one goroutine per target, all at once
}

func NewFanOut(logger *zap.Logger, checker probe.Checker, concurrency int) *FanOut {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency < 0 {
		concurrency = 0
	}
	return &FanOut{Logger: logger, Checker: checker, Concurrency: concurrency}
}

// RunAll probes every target and returns once all of them reached a terminal
// outcome. outcomes[i] always belongs to targets[i], whatever order the probes
// finish in. A failing or panicking probe never affects its siblings.
func (f *FanOut) RunAll(ctx context.Context, targets []domain.Target) []domain.CheckOutcome {
	outcomes := make([]domain.CheckOutcome, len(targets))

	var g errgroup.Group
	if f.Concurrency > 0 {
		g.SetLimit(f.Concurrency)
	}
	for i := range targets {
		g.Go(func() error {
			outcomes[i] = f.probeOne(ctx, &targets[i])
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (f *FanOut) probeOne(ctx context.Context, t *domain.Target) (out domain.CheckOutcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			f.Logger.Error("probe_panic",
				zap.String("name", t.Name),
				zap.String("url", t.URL),
				zap.String("panic", fmt.Sprint(r)),
			)
			out = domain.CheckOutcome{Target: t, Kind: domain.ErrOther, ResponseTime: time.Since(start)}
		}
	}()

	out = f.Checker.Check(ctx, t)
	out.Target = t

	f.Logger.Debug("probe_done",
		zap.String("name", t.Name),
		zap.String("url", t.URL),
		zap.Bool("success", out.Success),
		zap.Int("status", out.StatusCode),
		zap.String("error", out.Kind.String()),
		zap.Int64("response_time_ms", out.ResponseTime.Milliseconds()),
	)
	return out
}
