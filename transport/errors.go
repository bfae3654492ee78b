package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestEncode classifies a local failure building the request
	// (payload encryption, envelope marshalling, signing-material
	// generation) before anything touched the wire. Status is 0.
	ErrRequestEncode = errors.New("failed to encode request")
	// ErrNetwork classifies a fetch-level failure: the request never
	// completed an HTTP exchange. Status is 0.
	ErrNetwork = errors.New("network failure")
	// ErrTimeout classifies an aborted request that exceeded the configured
	// timeout. Status is 0.
	ErrTimeout = errors.New("request timed out")
	// ErrResponseParse classifies a response body that could not be
	// decrypted or parsed on an otherwise OK exchange. This should not
	// happen while the server upholds its contract.
	ErrResponseParse = errors.New("failed to parse server response")
	// ErrEmptyResponse classifies an empty body on an OK response.
	ErrEmptyResponse = errors.New("empty response from server")
)

// RequestError is the typed error surfaced for transport-level and
// parse-level failures. Kind is always one of the package sentinels, so
// callers classify with errors.Is; Cause carries the underlying error when
// one exists.
type RequestError struct {
	// Status is the HTTP status of the exchange, or 0 when the exchange
	// never completed.
	Status int
	Kind   error
	Cause  error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v (status %d): %v", e.Kind, e.Status, e.Cause)
	}
	return fmt.Sprintf("%v (status %d)", e.Kind, e.Status)
}

// Unwrap exposes both the classifying sentinel and the underlying cause.
func (e *RequestError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}
