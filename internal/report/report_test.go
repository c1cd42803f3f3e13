package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/hamed0406/watchtower/internal/domain"
)

func sample() []domain.CheckOutcome {
	a := &domain.Target{Name: "a", URL: "https://a.example", Timeout: time.Second}
	b := &domain.Target{Name: "b", URL: "https://b.example", Timeout: time.Second}
	c := &domain.Target{Name: "c", URL: "https://c.example", Timeout: time.Second}
	d := &domain.Target{Name: "d", URL: "https://d.example", Timeout: time.Second}
	return []domain.CheckOutcome{
		{Target: a, Success: true, StatusCode: 204, ResponseTime: 12 * time.Millisecond},
		{Target: b, Kind: domain.ErrHTTP, StatusCode: 503, ResponseTime: 30 * time.Millisecond},
		{Target: c, Kind: domain.ErrTimeout, ResponseTime: time.Second},
		{Target: d, Kind: domain.ErrConnectionFailure, ResponseTime: 3 * time.Millisecond},
	}
}

func TestAggregate_CountsAndOrder(t *testing.T) {
	in := sample()
	s := Aggregate(in, time.Date(2025, 8, 18, 12, 0, 0, 0, time.FixedZone("CET", 3600)))

	if s.TotalChecked != 4 || s.Successful != 1 || s.Failed != 3 {
		t.Fatalf("bad counts: %+v", s)
	}
	if s.Successful+s.Failed != s.TotalChecked || s.TotalChecked != len(s.Results) {
		t.Fatalf("counts do not add up: %+v", s)
	}
	for i := range in {
		if s.Results[i].Target != in[i].Target {
			t.Fatalf("order changed at %d", i)
		}
	}
	if s.Timestamp.Location() != time.UTC || s.Timestamp.Hour() != 11 {
		t.Fatalf("timestamp not normalized to UTC: %v", s.Timestamp)
	}
}

func TestAggregate_IsDeterministic(t *testing.T) {
	at := time.Now()
	a := Aggregate(sample(), at)
	b := Aggregate(sample(), at)
	if a.TotalChecked != b.TotalChecked || a.Successful != b.Successful || a.Failed != b.Failed || !a.Timestamp.Equal(b.Timestamp) {
		t.Fatalf("aggregate not deterministic: %+v vs %+v", a, b)
	}
}

func TestShouldNotify(t *testing.T) {
	all := sample()
	if !ShouldNotify(Aggregate(all, time.Now())) {
		t.Fatal("want notify with failures")
	}
	if ShouldNotify(Aggregate(all[:1], time.Now())) {
		t.Fatal("want no notify for all-success batch")
	}
	if ShouldNotify(Aggregate(nil, time.Now())) {
		t.Fatal("want no notify for empty batch")
	}
}

func TestWrite_Shape(t *testing.T) {
	s := Aggregate(sample(), time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["timestamp"] != "2025-08-18T12:00:00Z" {
		t.Fatalf("timestamp: %v", got["timestamp"])
	}
	if got["total_checked"].(float64) != 4 || got["successful"].(float64) != 1 || got["failed"].(float64) != 3 {
		t.Fatalf("counts: %v", got)
	}

	results := got["results"].([]any)
	ok := results[0].(map[string]any)
	if ok["error"] != nil || ok["status_code"].(float64) != 204 || ok["success"] != true {
		t.Fatalf("success row: %v", ok)
	}
	if ok["response_time_ms"].(float64) != 12 || ok["name"] != "a" || ok["url"] != "https://a.example" {
		t.Fatalf("success row fields: %v", ok)
	}

	httpErr := results[1].(map[string]any)
	if httpErr["error"] != "http_error" || httpErr["status_code"].(float64) != 503 {
		t.Fatalf("http error row: %v", httpErr)
	}

	timeout := results[2].(map[string]any)
	if timeout["error"] != "timeout" || timeout["status_code"] != nil {
		t.Fatalf("timeout row: %v", timeout)
	}
	if _, present := timeout["status_code"]; !present {
		t.Fatal("status_code must be present as null")
	}

	conn := results[3].(map[string]any)
	if conn["error"] != "connection_failure" {
		t.Fatalf("connection row: %v", conn)
	}
}

func TestRender_EmptyResultsIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Aggregate(nil, time.Now())); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"results": []`)) {
		t.Fatalf("want empty array, got %s", buf.String())
	}
}
