package remote

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/conn-castle/stepup/internal/messages"
)

// Kind classifies a NetworkError.
type Kind string

// Network failure kinds.
const (
	KindTimeout    Kind = "timeout"
	KindConnection Kind = "connection"
	KindStatus     Kind = "status"
)

// NetworkError reports a failed metadata or package request. It is surfaced to
// the caller for a retry-or-abort decision and never retried internally.
type NetworkError struct {
	Kind   Kind
	URL    string
	Status string
	Err    error
}

func (e *NetworkError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf(messages.RemoteTimeoutFmt, e.URL, e.Err)
	case KindStatus:
		return fmt.Sprintf(messages.RemoteStatusFmt, e.URL, e.Status)
	default:
		return fmt.Sprintf(messages.RemoteConnectionFmt, e.URL, e.Err)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a NetworkError of kind KindTimeout.
func IsTimeout(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr) && netErr.Kind == KindTimeout
}

// IsRetryable reports whether err is a network failure worth offering a retry for.
// Timeouts, connection failures and server-side statuses qualify; a caller
// cancellation does not.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		return false
	}
	if errors.Is(netErr.Err, context.Canceled) {
		return false
	}
	return true
}

// Classify wraps a transport error from url as a NetworkError.
func Classify(url string, err error) *NetworkError {
	if err == nil {
		return nil
	}
	if isTimeoutError(err) {
		return &NetworkError{Kind: KindTimeout, URL: url, Err: err}
	}
	return &NetworkError{Kind: KindConnection, URL: url, Err: err}
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
