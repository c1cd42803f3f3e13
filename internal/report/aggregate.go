package report

import (
	"time"

	"github.com/hamed0406/watchtower/internal/domain"
)

// Aggregate counts outcomes in one pass. Results keep the input order.
func Aggregate(outcomes []domain.CheckOutcome, at time.Time) domain.RunSummary {
	s := domain.RunSummary{
		Timestamp:    at.UTC(),
		TotalChecked: len(outcomes),
		Results:      make([]domain.CheckOutcome, len(outcomes)),
	}
	copy(s.Results, outcomes)
	for _, o := range outcomes {
		if o.Success {
			s.Successful++
		} else {
			s.Failed++
		}
	}
	return s
}

// ShouldNotify is the only alert trigger: any failure at all.
func ShouldNotify(s domain.RunSummary) bool {
	return s.Failed > 0
}
