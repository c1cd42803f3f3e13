package probe

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/hamed0406/watchtower/internal/domain"
)

const DefaultUserAgent = "Watchtower/1.0"

type HTTPChecker struct {
	Client    *http.Client
	UserAgent string
}

// NewHTTPChecker returns a checker whose requests never share a connection:
// keep-alives are off, so each check dials its own. The transport carries no
// dial or TLS handshake deadline of its own; the per-target timeout is the
// only bound.
func NewHTTPChecker(userAgent string) *HTTPChecker {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.DisableKeepAlives = true
	tr.TLSHandshakeTimeout = 0
	tr.DialContext = (&net.Dialer{KeepAlive: 30 * time.Second}).DialContext
	return &HTTPChecker{
		Client:    &http.Client{Transport: tr},
		UserAgent: userAgent,
	}
}

// Check issues one GET to t.URL. t.Timeout bounds connect plus response
// headers; when it fires the request is abandoned and the outcome is a timeout.
func (h *HTTPChecker) Check(ctx context.Context, t *domain.Target) domain.CheckOutcome {
	out := domain.CheckOutcome{Target: t}
	start := time.Now()

	timeout := t.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, t.URL, nil)
	if err != nil {
		out.Kind = domain.ErrOther
		out.ResponseTime = time.Since(start)
		return out
	}
	req.Header.Set("User-Agent", h.UserAgent)

	resp, err := h.Client.Do(req)
	out.ResponseTime = time.Since(start)
	if err != nil {
		if cctx.Err() == context.DeadlineExceeded {
			out.Kind = domain.ErrTimeout
		} else {
			out.Kind = Classify(err)
		}
		return out
	}
	// only the status matters; drop a bounded slice of the body so the
	// server sees a clean close
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()

	out.StatusCode = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		out.Success = true
	} else {
		out.Kind = domain.ErrHTTP
	}
	return out
}
