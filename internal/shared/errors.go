package shared

import (
	"fmt"
	"strings"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTrackNotFound      = fmt.Errorf("track not found")
	ErrKeyNotCached       = fmt.Errorf("api key not cached")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// ValidationError reports malformed caller input. It matches [ErrInvalidInput] with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// TransportError wraps a failed request to a backend. It matches [ErrAPIRequest] with errors.Is
// and unwraps to the underlying cause when there is one.
type TransportError struct {
	Message    string
	StatusCode int    // HTTP status code, 0 when no response was received
	Status     string // protocol level status text
	Body       []byte // response body, if any was read
	Err        error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString(ErrAPIRequest.Error())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrAPIRequest }

// CredentialExtractionError means the credential marker was not found in a fetched page.
// It matches [ErrInvalidCredentials] with errors.Is.
type CredentialExtractionError struct {
	Marker string
}

func (e *CredentialExtractionError) Error() string {
	return fmt.Sprintf("failed to extract `%s`", e.Marker)
}

func (e *CredentialExtractionError) Is(target error) bool { return target == ErrInvalidCredentials }
