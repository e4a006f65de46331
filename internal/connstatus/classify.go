// internal/connstatus/classify.go
package connstatus

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"

	"github.com/qrcodeshare/qrshare/internal/api"
)

// Classify maps a caught error to a state transition.
// ok=false means the error says nothing about reachability and the
// current state must be kept.
//
//	unreachable host, refused, timeout  => Offline
//	HTTP 403 / 429                      => Offline
//	anything else (404, 5xx, decode...) => unchanged
func Classify(err error) (State, bool) {
	if err == nil {
		return 0, false
	}

	if code := api.StatusCode(err); code != 0 {
		switch code {
		case http.StatusForbidden, http.StatusTooManyRequests:
			return Offline, true
		}
		return 0, false
	}

	if errors.Is(err, context.Canceled) {
		return 0, false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Offline, true
	}
	// a reset on an established connection is not a reachability signal
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return Offline, true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return Offline, true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return Offline, true
	}

	type timeout interface{ Timeout() bool }
	var te timeout
	if errors.As(err, &te) && te.Timeout() {
		return Offline, true
	}

	return 0, false
}
