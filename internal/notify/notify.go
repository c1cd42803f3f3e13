package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamed0406/watchtower/internal/domain"
)

var (
	// ErrSinkUnconfigured means there is no webhook address to deliver to.
	ErrSinkUnconfigured = errors.New("notification sink not configured")
	ErrDeliveryFailed   = errors.New("notification delivery failed")
)

// Notifier delivers one alert describing every failure of a run.
type Notifier interface {
	Notify(ctx context.Context, s domain.RunSummary) error
}

// DeliveryError carries what went wrong on the way to the sink.
// It matches ErrDeliveryFailed with errors.Is.
type DeliveryError struct {
	StatusCode int // 0 when no response came back
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: sink answered %d", ErrDeliveryFailed, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", ErrDeliveryFailed, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

func (e *DeliveryError) Is(target error) bool { return target == ErrDeliveryFailed }
