package portalclient

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is an exported constant or variable used by the portal client.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthenticated is an exported constant or variable used by the portal client.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrBootstrap is an exported constant or variable used by the portal client.
	ErrBootstrap = errors.New("academic context bootstrap failed")
	// ErrNoAcademicYears is an exported constant or variable used by the portal client.
	ErrNoAcademicYears = errors.New("no academic years available")
	// ErrNoTerms is an exported constant or variable used by the portal client.
	ErrNoTerms = errors.New("no terms available")
	// ErrResetRecordNotFound is an exported constant or variable used by the portal client.
	ErrResetRecordNotFound = errors.New("record does not exist")
	// ErrPasswordResetFailed is an exported constant or variable used by the portal client.
	ErrPasswordResetFailed = errors.New("password reset failed")
	// ErrInvalidBirthdate is an exported constant or variable used by the portal client.
	ErrInvalidBirthdate = errors.New("invalid birthdate format")
)

// ValidationError defines a public type used by portalclient APIs.
//
// ValidationError carries the offending field so callers can surface the
// failure next to the right input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
