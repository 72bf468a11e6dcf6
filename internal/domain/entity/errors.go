package entity

import (
	"errors"
	"fmt"
)

// FailureKind classifies generation failures at the adapter boundary so
// callers can pick retry/backoff policy per kind instead of matching on
// error strings.
type FailureKind string

const (
	FailureMissingCredential FailureKind = "MISSING_CREDENTIAL"
	FailureEmptyResponse     FailureKind = "EMPTY_RESPONSE"
	FailureQuotaExceeded     FailureKind = "QUOTA_EXCEEDED"
	FailureBackendError      FailureKind = "BACKEND_ERROR"
	FailureMalformedOutput   FailureKind = "MALFORMED_OUTPUT"
)

// Retryable reports whether re-sending the same prompt can plausibly
// succeed. Missing credentials need operator action; malformed output is a
// generation-quality issue, not a transient fault.
func (k FailureKind) Retryable() bool {
	switch k {
	case FailureEmptyResponse, FailureQuotaExceeded, FailureBackendError:
		return true
	default:
		return false
	}
}

// GenerationError is the typed outcome of a failed backend invocation.
type GenerationError struct {
	Kind    FailureKind
	Message string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %s", e.Kind, e.Message)
}

func NewGenerationError(kind FailureKind, message string) *GenerationError {
	return &GenerationError{Kind: kind, Message: message}
}

// KindOf extracts the failure kind from an error chain, defaulting to
// BackendError for anything untyped.
func KindOf(err error) FailureKind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return FailureBackendError
}

// MessageOf returns the human-readable failure message from an error chain.
func MessageOf(err error) string {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Message
	}
	return err.Error()
}
