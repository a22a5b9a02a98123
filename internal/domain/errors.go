package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

// APIError is a server-reported failure: any HTTP response with status >= 400.
// Status carries the numeric HTTP status code, Message the human-readable
// explanation (the server's "detail" field when present, else the HTTP status
// text), and Body the raw parsed error body, which may be nil when the server
// sent no body or a non-JSON one.
type APIError struct {
	Status  int
	Message string
	Body    map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Unwrap maps well-known status codes onto sentinel errors so callers can use
// errors.Is(err, domain.ErrNotFound) without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return nil
	}
}

// IsCancellation reports whether err is attributable to the caller cancelling
// the request rather than to the server or the network. Callers use this to
// tell an aborted in-flight read apart from a genuine failure.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ValidationError provides programmatic access to field-level validation
// failures produced by client-side coercion before submission. The server
// remains the authority; this only catches payloads that are locally known
// to be invalid.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// MsgRequired is the shared validation message for missing required fields.
const MsgRequired = "is required"
