package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by category for better error handling

type ErrorType string

// Domain/Business Logic Errors - errors related to business rules and validation
const (
	ValidationError ErrorType = "VALIDATION_ERROR"
	NotFoundError   ErrorType = "NOT_FOUND_ERROR"
)

// Upstream Errors - errors returned by the weather/geocoding provider
const (
	UpstreamUnavailableError ErrorType = "UPSTREAM_UNAVAILABLE"
	UpstreamRejectedError    ErrorType = "UPSTREAM_REJECTED"
	UpstreamMalformedError   ErrorType = "UPSTREAM_MALFORMED"
)

// Processing/Infrastructure Errors
const (
	NormalizationError ErrorType = "NORMALIZATION_ERROR"
	DatabaseError      ErrorType = "DATABASE_ERROR"
)

// System/Configuration Errors - errors related to system setup and configuration
const (
	ConfigurationError ErrorType = "CONFIGURATION_ERROR"
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

// Upstream Error Constructors
func NewUpstreamUnavailableError(message string, cause error) *AppError {
	return Wrap(UpstreamUnavailableError, message, cause)
}

func NewUpstreamRejectedError(message string, cause error) *AppError {
	return Wrap(UpstreamRejectedError, message, cause)
}

func NewUpstreamMalformedError(message string, cause error) *AppError {
	return Wrap(UpstreamMalformedError, message, cause)
}

// Processing/Infrastructure Error Constructors
func NewNormalizationError(message string, cause error) *AppError {
	return Wrap(NormalizationError, message, cause)
}

func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(DatabaseError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// TypeOf extracts the ErrorType from err, unwrapping as needed. Errors that
// carry no AppError anywhere in their chain report an empty type.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsType reports whether err carries an AppError of the given type.
func IsType(err error, errorType ErrorType) bool {
	return TypeOf(err) == errorType
}

// IsUpstream reports whether err originates from the upstream provider.
func IsUpstream(err error) bool {
	switch TypeOf(err) {
	case UpstreamUnavailableError, UpstreamRejectedError, UpstreamMalformedError:
		return true
	}
	return false
}
