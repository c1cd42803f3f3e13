package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hamed0406/watchtower/internal/domain"
)

func failingSummary() domain.RunSummary {
	ok := &domain.Target{Name: "home", URL: "https://home.example"}
	api := &domain.Target{Name: "api", URL: "https://api.example"}
	shop := &domain.Target{Name: "shop", URL: "https://shop.example"}
	return domain.RunSummary{
		Timestamp:    time.Date(2025, 8, 18, 12, 30, 0, 0, time.UTC),
		TotalChecked: 3,
		Successful:   1,
		Failed:       2,
		Results: []domain.CheckOutcome{
			{Target: ok, Success: true, StatusCode: 200},
			{Target: api, Kind: domain.ErrHTTP, StatusCode: 502, ResponseTime: 40 * time.Millisecond},
			{Target: shop, Kind: domain.ErrTimeout, ResponseTime: 10 * time.Second},
		},
	}
}

func TestSlack_OK(t *testing.T) {
	var got slackPayload
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type %q", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(200)
	}))
	defer ts.Close()

	err := NewSlack(ts.URL, time.Second).Notify(context.Background(), failingSummary())
	if err != nil {
		t.Fatalf("notify err: %v", err)
	}
	if calls != 1 {
		t.Fatalf("want exactly one POST, got %d", calls)
	}
	for _, want := range []string{"2 domains are down", "2025-08-18 12:30:00 UTC", "api", "https://shop.example", "HTTP 502", "Timeout", "10000ms"} {
		if !strings.Contains(got.Text, want) {
			t.Fatalf("text missing %q: %q", want, got.Text)
		}
	}
	if strings.Contains(got.Text, "home") {
		t.Fatalf("successful target listed: %q", got.Text)
	}
	// header, time, divider, one section per failure
	if len(got.Blocks) != 5 || got.Blocks[0].Type != "header" || got.Blocks[2].Type != "divider" {
		t.Fatalf("unexpected blocks: %+v", got.Blocks)
	}
	if f := got.Blocks[3].Fields; len(f) != 4 || f[0].Text != "*Domain:*\napi" {
		t.Fatalf("unexpected failure fields: %+v", f)
	}
}

func TestSlack_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer ts.Close()

	err := NewSlack(ts.URL, time.Second).Notify(context.Background(), failingSummary())
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("want ErrDeliveryFailed, got %v", err)
	}
	var de *DeliveryError
	if !errors.As(err, &de) || de.StatusCode != 500 {
		t.Fatalf("want DeliveryError with 500, got %v", err)
	}
}

func TestSlack_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	err := NewSlack(url, time.Second).Notify(context.Background(), failingSummary())
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("want ErrDeliveryFailed, got %v", err)
	}
}

func TestSlack_Unconfigured(t *testing.T) {
	if err := NewSlack("", 0).Notify(context.Background(), failingSummary()); !errors.Is(err, ErrSinkUnconfigured) {
		t.Fatalf("want ErrSinkUnconfigured, got %v", err)
	}
	var s *Slack
	if err := s.Notify(context.Background(), failingSummary()); !errors.Is(err, ErrSinkUnconfigured) {
		t.Fatalf("nil slack: want ErrSinkUnconfigured, got %v", err)
	}
}

func TestHeadline_Singular(t *testing.T) {
	if got := headline(1); got != "Uptime Alert: 1 domain is down" {
		t.Fatalf("got %q", got)
	}
}
