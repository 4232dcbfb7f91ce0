package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents a provider error code.
type ErrorCode string

const (
	ErrorCodeContextLength  ErrorCode = "context_length_exceeded"
	ErrorCodeContentBlocked ErrorCode = "content_blocked"
	ErrorCodeRateLimit      ErrorCode = "rate_limit"
	ErrorCodeInvalidModel   ErrorCode = "invalid_model"
	ErrorCodeAuth           ErrorCode = "authentication_failed"
	ErrorCodeNetwork        ErrorCode = "network_error"
	ErrorCodeTimeout        ErrorCode = "timeout"
	ErrorCodeUnavailable    ErrorCode = "service_unavailable"
	ErrorCodeInvalidRequest ErrorCode = "invalid_request"
)

// ProviderError wraps errors with additional context.
type ProviderError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Retryable  bool
	RetryAfter *time.Duration
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// IsRetryable returns true if the error is retryable.
func IsRetryable(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}
	return false
}

// CodeOf returns the error code, or empty when err is not a ProviderError.
func CodeOf(err error) ErrorCode {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Code
	}
	return ""
}
