package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hamed0406/watchtower/internal/domain"
)

type Slack struct {
	Webhook string
	Client  *http.Client
}

// NewSlack returns a Slack incoming-webhook notifier. An empty webhook is
// allowed; Notify then reports ErrSinkUnconfigured.
func NewSlack(webhook string, timeout time.Duration) *Slack {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Slack{
		Webhook: webhook,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Notify makes exactly one POST attempt.
func (s *Slack) Notify(ctx context.Context, sum domain.RunSummary) error {
	if s == nil || s.Webhook == "" {
		return ErrSinkUnconfigured
	}
	body, err := json.Marshal(buildMessage(sum))
	if err != nil {
		return fmt.Errorf("encode slack message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Webhook, bytes.NewReader(body))
	if err != nil {
		return &DeliveryError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return &DeliveryError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &DeliveryError{StatusCode: resp.StatusCode}
	}
	return nil
}
