package types

import (
	"errors"
	"fmt"
)

// UnknownHTTPStatus marks a NetworkingError for which no usable HTTP status
// exists: the transport failed before a response, or a 2xx body could not be
// decoded.
const UnknownHTTPStatus = 520

// NetworkingError is a failure that originated on the remote side or on the
// way there.
type NetworkingError struct {
	HTTPStatus int    `json:"http_status"`
	Message    string `json:"message"`
}

func (e *NetworkingError) Error() string {
	return fmt.Sprintf("networking error (status %d): %s", e.HTTPStatus, e.Message)
}

// GeneralError is a local failure, typically input validation. It never
// carries an HTTP status.
type GeneralError struct {
	Message string
	Err     error
}

// Generalf builds a GeneralError from a format string.
func Generalf(format string, args ...any) *GeneralError {
	return &GeneralError{Message: fmt.Sprintf(format, args...)}
}

func (e *GeneralError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *GeneralError) Unwrap() error { return e.Err }

// ErrorKind is the classification boundary layers branch on.
type ErrorKind int

const (
	// KindNone means no error.
	KindNone ErrorKind = iota
	// KindGeneral is a local or validation failure.
	KindGeneral
	// KindNetworking is a transport or remote failure.
	KindNetworking
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindGeneral:
		return "general"
	case KindNetworking:
		return "networking"
	default:
		return "unknown"
	}
}

// Classify maps err onto the two-way services error taxonomy. Errors that are
// neither kind count as general.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var ne *NetworkingError
	if errors.As(err, &ne) {
		return KindNetworking
	}
	return KindGeneral
}

// IsNetworking reports whether err wraps a *NetworkingError.
func IsNetworking(err error) bool { return Classify(err) == KindNetworking }

// IsGeneral reports whether err is a non-networking error.
func IsGeneral(err error) bool { return Classify(err) == KindGeneral }

// HTTPStatusOf returns the status carried by a wrapped NetworkingError.
func HTTPStatusOf(err error) (int, bool) {
	var ne *NetworkingError
	if errors.As(err, &ne) {
		return ne.HTTPStatus, true
	}
	return 0, false
}
