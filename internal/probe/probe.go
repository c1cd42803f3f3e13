package probe

import (
	"context"
	"time"

	"github.com/hamed0406/watchtower/internal/domain"
)

// DefaultTimeout applies to targets that carry no timeout of their own.
const DefaultTimeout = 10 * time.Second

// Checker performs a single bounded-time check of one target.
//
// Implementations must be safe for concurrent use and must never return
// without a terminal outcome: every failure is folded into the outcome.
type Checker interface {
	Check(ctx context.Context, t *domain.Target) domain.CheckOutcome
}
