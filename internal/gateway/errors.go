// Package gateway implements the HTTP client for the upstream SMS provider:
// batched dispatch and delivery-report fetching.
package gateway

import "fmt"

// ErrorKind classifies a failed gateway call so callers can branch on the
// failure mode without parsing messages.
type ErrorKind string

const (
	// KindAuth means the gateway rejected the API key.
	KindAuth ErrorKind = "auth"
	// KindTimeout means the call exceeded its deadline.
	KindTimeout ErrorKind = "timeout"
	// KindServer means the gateway answered with a 5xx status.
	KindServer ErrorKind = "server"
	// KindProtocol means the response was malformed or missing a required field.
	KindProtocol ErrorKind = "protocol"
	// KindRejected means the gateway returned an explicit non-success result code.
	KindRejected ErrorKind = "rejected"
)

// Error is a classified failure of an upstream call.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway %s error: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
