package apiclient

import (
	"errors"
	"strings"
)

// ErrorKind tags the failure class at the resource-client boundary so
// downstream code never inspects raw response bodies.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindServer     ErrorKind = "server"
	KindNetwork    ErrorKind = "network"
)

const genericErrorMessage = "something went wrong, please try again"

// Substring the backend puts in its message when an update carried no
// changed fields. A benign outcome, not an error; callers map it to a
// warning notice.
const noFieldsChangedSignal = "no information to update"

// APIError is the structured form of every backend or transport failure.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return genericErrorMessage
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ErrNoFieldsChanged marks the backend's distinguishable no-op update
// outcome.
var ErrNoFieldsChanged = errors.New("no fields changed")

// IsNoFieldsChanged reports whether err is the benign no-op update signal.
func IsNoFieldsChanged(err error) bool {
	return errors.Is(err, ErrNoFieldsChanged)
}

// UserMessage extracts the message to surface for err, falling back to a
// generic line when the backend gave nothing usable.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericErrorMessage
}

func isNoFieldsChangedMessage(msg string) bool {
	return strings.Contains(strings.ToLower(msg), noFieldsChangedSignal)
}

func kindForStatus(code int) ErrorKind {
	switch {
	case code == 404:
		return KindNotFound
	case code == 409:
		return KindConflict
	case code >= 400 && code < 500:
		return KindValidation
	default:
		return KindServer
	}
}
