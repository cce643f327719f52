package util

import (
	"errors"
	"fmt"
	"net/http"
)

// EngineError standardizes failures crossing the engine boundary. Remote and
// API failures are converted to one of the known kinds at the operation
// boundary; unstructured errors never reach the presentation layer.
type EngineError struct {
	Kind       string
	Message    string
	HTTPStatus int
	Err        error
}

// Error kinds surfaced to consumers.
const (
	KindAuth        = "AUTH_ERROR"
	KindRemoteRead  = "REMOTE_READ_ERROR"
	KindRemoteWrite = "REMOTE_WRITE_ERROR"
	KindResolution  = "RESOLUTION_ERROR"
)

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewAuthError marks a call rejected by the remote store as unauthorized.
// The engine does not retry; the consumer must re-authenticate.
func NewAuthError(message string, status int) error {
	return &EngineError{Kind: KindAuth, Message: message, HTTPStatus: status}
}

// NewRemoteReadError marks a failed fetch. The current cycle aborts and the
// last-known-good snapshot stays visible.
func NewRemoteReadError(message string, status int, err error) error {
	return &EngineError{Kind: KindRemoteRead, Message: message, HTTPStatus: status, Err: err}
}

// NewRemoteWriteError marks a failed single-field patch. No automatic retry;
// the caller may re-invoke.
func NewRemoteWriteError(message string, status int, err error) error {
	return &EngineError{Kind: KindRemoteWrite, Message: message, HTTPStatus: status, Err: err}
}

// NewResolutionError marks a failed author lookup. Non-fatal: the record
// degrades to its fallback label and the cycle continues.
func NewResolutionError(message string, err error) error {
	return &EngineError{Kind: KindResolution, Message: message, Err: err}
}

// ToEngineError extracts the structured form, or nil for a nil error.
func ToEngineError(err error) *EngineError {
	if err == nil {
		return nil
	}
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr
	}
	return &EngineError{Kind: KindRemoteRead, Message: "remote operation failed", Err: err}
}

// KindOf reports the kind of a classified error, or "" for nil/unknown.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr.Kind
	}
	return ""
}

// IsAuthStatus reports whether an HTTP status indicates a rejected token.
func IsAuthStatus(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
