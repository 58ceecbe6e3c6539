package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind identifies one of the recognised backend call failures.
type Kind int

const (
	// KindTransport means the call could not complete (DNS, connection reset, bad body).
	KindTransport Kind = iota + 1
	// KindTimeout means the call did not complete within its deadline.
	KindTimeout
	// KindHTTPStatus means the backend answered with a non-2xx status.
	KindHTTPStatus
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http_status"
	default:
		return "unknown"
	}
}

// RequestError is the closed set of failures a backend call may produce.
// Anything that is not a *RequestError is treated as a programming error.
type RequestError struct {
	Kind    Kind
	Status  int
	Message string
	Source  string // path of the failed endpoint
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s (%d): %s: %v", e.Kind, e.Source, e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s (%d): %s", e.Kind, e.Source, e.Status, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewTransportError reports a call that could not complete.
func NewTransportError(source string, err error) *RequestError {
	return &RequestError{
		Kind:    KindTransport,
		Status:  http.StatusInternalServerError,
		Message: http.StatusText(http.StatusInternalServerError),
		Source:  source,
		Err:     err,
	}
}

// NewTimeoutError reports a call cancelled by its deadline.
func NewTimeoutError(source string, timeout time.Duration, err error) *RequestError {
	return &RequestError{
		Kind:    KindTimeout,
		Status:  http.StatusGatewayTimeout,
		Message: fmt.Sprintf("Request timed out after %s", timeout),
		Source:  source,
		Err:     err,
	}
}

// NewHTTPStatusError reports a completed call with a non-2xx status.
func NewHTTPStatusError(status int, source string) *RequestError {
	message := http.StatusText(status)
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return &RequestError{
		Kind:    KindHTTPStatus,
		Status:  status,
		Message: message,
		Source:  source,
	}
}

// AsRequestError returns the first *RequestError in err's chain.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// Catch runs fn and splits its outcome into (failure, value). Exactly one of
// the two is meaningful: a recognised *RequestError is returned in the first
// slot, otherwise the value is returned. Any other error panics unchanged so
// programming errors surface as hard failures instead of "error" results.
func Catch[T any](fn func() (T, error)) (*RequestError, T) {
	value, err := fn()
	if err == nil {
		return nil, value
	}
	if reqErr, ok := AsRequestError(err); ok {
		var zero T
		return reqErr, zero
	}
	panic(err)
}
