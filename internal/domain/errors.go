package domain

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// APIError represents a standardized error response
type APIError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for different failure scenarios
const (
	ErrInvalidInput   = "INVALID_INPUT"
	ErrClientNotFound = "CLIENT_NOT_FOUND"
	ErrUpstreamFetch  = "UPSTREAM_FETCH_ERROR"
	ErrProcessing     = "PROCESSING_ERROR"
	ErrRateLimit      = "RATE_LIMIT_EXCEEDED"
	ErrInternalServer = "INTERNAL_SERVER_ERROR"
	ErrValidation     = "VALIDATION_ERROR"
)

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// InvalidInputError reports a request body that could not be decoded at all,
// as opposed to a decoded value failing validation.
type InvalidInputError struct {
	Err error
}

// Error implements the error interface
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %v", e.Err)
}

// Unwrap returns the decoding error
func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// NotFoundError reports that no row in a source matched the client.
type NotFoundError struct {
	Source Source
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Client not found in %s data", e.Source)
}

// Is lets errors.Is(err, ErrNotFound) match any source.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UpstreamFetchError reports an unreachable source or a non-success status.
type UpstreamFetchError struct {
	Source     Source
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *UpstreamFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s data: unexpected status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s data: %v", e.Source, e.Err)
}

// Unwrap returns the underlying transport error
func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}

// ProcessingError wraps any other pipeline failure (missing phrase key,
// classifier or decoder failure, malformed data).
type ProcessingError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the wrapped error
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new APIError with timestamp
func NewAPIError(code, message, detail, requestID string) *APIError {
	return &APIError{
		Code:      code,
		Message:   message,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// NewProcessingError creates a new ProcessingError
func NewProcessingError(op string, err error) *ProcessingError {
	return &ProcessingError{Op: op, Err: err}
}

// HTTPStatus maps a pipeline error to its response status and error code.
// Not-found is 404, undecodable input and validation are 400, everything
// else collapses to 500.
func HTTPStatus(err error) (int, string) {
	var notFound *NotFoundError
	var validation *ValidationError
	var invalid *InvalidInputError
	var upstream *UpstreamFetchError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, ErrClientNotFound
	case errors.As(err, &invalid):
		return http.StatusBadRequest, ErrInvalidInput
	case errors.As(err, &validation):
		return http.StatusBadRequest, ErrValidation
	case errors.As(err, &upstream):
		return http.StatusInternalServerError, ErrUpstreamFetch
	default:
		return http.StatusInternalServerError, ErrProcessing
	}
}

// ErrorDetail renders the human-readable detail for a pipeline error.
func ErrorDetail(err error) string {
	var notFound *NotFoundError
	var validation *ValidationError
	var invalid *InvalidInputError
	if errors.As(err, &notFound) {
		return notFound.Error()
	}
	if errors.As(err, &validation) {
		return validation.Error()
	}
	if errors.As(err, &invalid) {
		return invalid.Error()
	}
	return fmt.Sprintf("Error processing data: %v", err)
}
