// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound = errors.New("not found")

	// Provider errors.
	ErrProvider       = errors.New("provider request failed")
	ErrExchangeFailed = errors.New("public token exchange failed")
	ErrInvalidToken   = errors.New("invalid access token")

	// Transport errors.
	ErrNetwork = errors.New("network request failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// ProviderError carries the provider's error code and message verbatim so
// callers can surface them without reinterpretation.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s - %s", e.Code, e.Message)
}

// Is reports whether target matches the generic provider sentinel.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}
