package probe

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/hamed0406/watchtower/internal/domain"
)

// Classify maps a transport error from an HTTP round trip to an ErrorKind.
// Timeouts win over everything else, then DNS and dial failures.
func Classify(err error) domain.ErrorKind {
	if err == nil {
		return domain.ErrNone
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return domain.ErrTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return domain.ErrConnectionFailure
	}
	// Only dial failures count here; a TLS alert also arrives as an OpError.
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return domain.ErrConnectionFailure
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return domain.ErrConnectionFailure
	}
	return domain.ErrOther
}
