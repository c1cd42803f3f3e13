package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/hamed0406/watchtower/internal/domain"
)

// Output is the response body of one run.
type Output struct {
	Timestamp    string   `json:"timestamp"`
	TotalChecked int      `json:"total_checked"`
	Successful   int      `json:"successful"`
	Failed       int      `json:"failed"`
	Results      []Result `json:"results"`
}

type Result struct {
	Name           string  `json:"name"`
	URL            string  `json:"url"`
	Success        bool    `json:"success"`
	Error          *string `json:"error"`
	StatusCode     *int    `json:"status_code"`
	ResponseTimeMS int64   `json:"response_time_ms"`
}

func Render(s domain.RunSummary) Output {
	out := Output{
		Timestamp:    s.Timestamp.UTC().Format(time.RFC3339),
		TotalChecked: s.TotalChecked,
		Successful:   s.Successful,
		Failed:       s.Failed,
		Results:      make([]Result, 0, len(s.Results)),
	}
	for _, o := range s.Results {
		r := Result{
			Success:        o.Success,
			ResponseTimeMS: o.ResponseTime.Milliseconds(),
		}
		if o.Target != nil {
			r.Name = o.Target.Name
			r.URL = o.Target.URL
		}
		if !o.Success {
			kind := o.Kind
			if kind == domain.ErrNone {
				kind = domain.ErrOther
			}
			e := kind.String()
			r.Error = &e
		}
		if o.HasStatus() {
			code := o.StatusCode
			r.StatusCode = &code
		}
		out.Results = append(out.Results, r)
	}
	return out
}

// Write renders s as indented JSON.
func Write(w io.Writer, s domain.RunSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Render(s))
}
