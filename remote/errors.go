package remote

import (
	"errors"
	"fmt"
	"io/fs"
)

// StatusConnectionFailed is the private pseudo-code carried by a
// [StatusError] for connection-level failures that happen before any
// HTTP status is received.
const StatusConnectionFailed = 499

var (
	// ErrUnexpectedStatus is the sentinel error wrapped by [StatusError]
	// when the server responded with a non-2xx code.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrConnectionFailed is the sentinel error wrapped by [StatusError]
	// when the exchange failed before an HTTP status was received.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrAbandoned is the error observed by the worker when a stream is
	// closed without Finish and the in-flight request is dropped.
	ErrAbandoned = errors.New("transfer abandoned")
)

// StatusError is an HTTP failure carrying the numeric status code and
// the server-supplied message.
type StatusError struct {
	Code    int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Is maps HTTP codes onto the generic [io/fs] error kinds so that
// tooling which only understands that vocabulary can classify remote
// failures: 404/410 read as not-found, 401/403 as permission-denied.
func (e *StatusError) Is(target error) bool {
	switch target {
	case fs.ErrNotExist:
		return e.Code == 404 || e.Code == 410
	case fs.ErrPermission:
		return e.Code == 401 || e.Code == 403
	}
	return false
}

func connectionError(err error) *StatusError {
	return &StatusError{
		Code:    StatusConnectionFailed,
		Message: err.Error(),
		Err:     ErrConnectionFailed,
	}
}

func statusError(code int, body string) *StatusError {
	return &StatusError{
		Code:    code,
		Message: body,
		Err:     ErrUnexpectedStatus,
	}
}
