package serrors

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// IsNoConnection reports whether err describes a network that is unreachable
// rather than an upstream that answered with a failure. Callers use it to
// pick between a "check your connection" rendering and a generic error.
//
// It matches the ErrNoConnection kind plus the transport-level errors the
// standard library produces when no connectivity exists: DNS resolution
// failures, refused or unreachable connections, and deadline expiry on dial.
func IsNoConnection(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoConnection) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	// a dial that never reached the upstream surfaces as *net.OpError
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	// context deadline on dial is indistinguishable from a dead network
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	return false
}
