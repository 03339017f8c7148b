package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an upstream failure. Handlers branch on the kind to
// choose a console response; the cache layer consults Retryable.
type Kind int

const (
	// KindTransport covers connection failures and timeouts; no HTTP
	// response was obtained.
	KindTransport Kind = iota
	// KindAuth covers 401/403 responses. Surfaced distinctly so the
	// console can send the operator back through login.
	KindAuth
	// KindNotFound covers 404 responses, including a repeated delete.
	KindNotFound
	// KindValidation covers the remaining 4xx responses; the backend
	// message is carried verbatim.
	KindValidation
	// KindServer covers 5xx responses.
	KindServer
	// KindDecode covers response bodies that do not match the expected
	// shape. Distinct from the deliberate empty-map leniency of the
	// embedded options document.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the single error type surfaced by this package. StatusCode
// is zero when no HTTP response was obtained.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream %s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether the failure is worth one more attempt.
// Only transport failures and 5xx responses qualify; auth, validation
// and decode failures will not improve on retry.
func (e *Error) Retryable() bool {
	return e.Kind == KindTransport || e.Kind == KindServer
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: "failed to reach server", Err: err}
}

func decodeError(err error) *Error {
	return &Error{Kind: KindDecode, Message: "malformed response from server", Err: err}
}

func statusError(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}

	kind := KindValidation
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status >= 500:
		kind = KindServer
	}

	return &Error{Kind: kind, StatusCode: status, Message: message}
}

// KindOf returns the upstream error kind, or false when err does not
// originate from this package.
func KindOf(err error) (Kind, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind, true
	}
	return 0, false
}

// IsRetryable reports whether err is an upstream error eligible for the
// bounded read retry.
func IsRetryable(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Retryable()
}
