package domain

import "time"

// Target is one endpoint to check. Loaded once per run; never mutated.
type Target struct {
	Name    string
	URL     string
	Timeout time.Duration
}

// ErrorKind classifies why a check failed. The zero value means no error.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrTimeout
	ErrConnectionFailure
	ErrHTTP
	ErrOther
)

// String returns the wire name used in summaries ("" for ErrNone).
func (k ErrorKind) String() string {
	switch k {
	case ErrTimeout:
		return "timeout"
	case ErrConnectionFailure:
		return "connection_failure"
	case ErrHTTP:
		return "http_error"
	case ErrOther:
		return "other"
	default:
		return ""
	}
}

// CheckOutcome is the result of probing one Target.
//
// When Success is true, StatusCode is in [200,299] and Kind is ErrNone.
// When Success is false, either Kind is ErrHTTP and StatusCode holds the
// observed code, or Kind is a transport error and StatusCode is 0.
type CheckOutcome struct {
	Target       *Target
	Success      bool
	StatusCode   int // 0 when no response was received
	Kind         ErrorKind
	ResponseTime time.Duration
}

// HasStatus reports whether a response status was observed.
func (o CheckOutcome) HasStatus() bool { return o.StatusCode != 0 }

// RunSummary aggregates every outcome of one invocation.
// Successful + Failed == TotalChecked == len(Results).
type RunSummary struct {
	Timestamp    time.Time
	TotalChecked int
	Successful   int
	Failed       int
	Results      []CheckOutcome // same order as the input targets
}

// Failures returns the failed outcomes, in input order.
func (s RunSummary) Failures() []CheckOutcome {
	out := make([]CheckOutcome, 0, s.Failed)
	for _, o := range s.Results {
		if !o.Success {
			out = append(out, o)
		}
	}
	return out
}
