// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "errors"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}

// Sentinel errors for the domain error taxonomy. Services wrap these with
// context via fmt.Errorf("...: %w", Err...); handlers classify with errors.Is
// to pick the HTTP status code.
var (
	// ErrValidation — requested quantity exceeds available stock, required
	// field missing, rating unset. Recoverable by the caller; no mutation
	// has occurred.
	ErrValidation = errors.New("validation error")

	// ErrIllegalTransition — requested status change is not reachable from
	// the current state for this actor. No partial mutation is applied.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrDuplicateFeedback — a feedback record already exists for the order.
	ErrDuplicateFeedback = errors.New("feedback already exists for order")

	// ErrNotFound — referenced entity absent from the current snapshot.
	ErrNotFound = errors.New("not found")
)
