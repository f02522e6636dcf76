package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		message   string
		detail    string
		requestID string
	}{
		{
			name:      "Not found error",
			code:      ErrClientNotFound,
			message:   "Client lookup failed",
			detail:    "Client not found in PHQ9 data",
			requestID: "req-123",
		},
		{
			name:      "Processing error",
			code:      ErrProcessing,
			message:   "Analysis failed",
			detail:    "Error processing data: missing phrase category",
			requestID: "req-456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIError(tt.code, tt.message, tt.detail, tt.requestID)

			if err.Code != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, err.Code)
			}
			if err.Message != tt.message {
				t.Errorf("Expected message %s, got %s", tt.message, err.Message)
			}
			if err.Detail != tt.detail {
				t.Errorf("Expected detail %s, got %s", tt.detail, err.Detail)
			}
			if err.RequestID != tt.requestID {
				t.Errorf("Expected requestID %s, got %s", tt.requestID, err.RequestID)
			}
			if time.Since(err.Timestamp) > time.Minute {
				t.Errorf("Timestamp should be recent, got %v", err.Timestamp)
			}

			expectedError := tt.code + ": " + tt.message
			if err.Error() != expectedError {
				t.Errorf("Expected error string %s, got %s", expectedError, err.Error())
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("first_name", "first name is required", "")

	if err.Field != "first_name" {
		t.Errorf("Expected field first_name, got %s", err.Field)
	}
	expected := "validation error for field 'first_name': first name is required"
	if err.Error() != expected {
		t.Errorf("Expected error string %s, got %s", expected, err.Error())
	}
}

func TestNotFoundError(t *testing.T) {
	for _, source := range PipelineOrder {
		t.Run(source.String(), func(t *testing.T) {
			err := fmt.Errorf("searching: %w", &NotFoundError{Source: source})

			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Expected errors.Is(err, ErrNotFound) for %s", source)
			}
			expected := "Client not found in " + string(source) + " data"
			if ErrorDetail(err) != expected {
				t.Errorf("Expected detail %q, got %q", expected, ErrorDetail(err))
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", &NotFoundError{Source: SOURCE_ASQ}, http.StatusNotFound, ErrClientNotFound},
		{"wrapped not found", fmt.Errorf("stage: %w", &NotFoundError{Source: SOURCE_BAI}), http.StatusNotFound, ErrClientNotFound},
		{"validation", NewValidationError("last_name", "required", ""), http.StatusBadRequest, ErrValidation},
		{"invalid input", &InvalidInputError{Err: errors.New("unexpected EOF")}, http.StatusBadRequest, ErrInvalidInput},
		{"upstream", &UpstreamFetchError{Source: SOURCE_PHQ9, StatusCode: 503}, http.StatusInternalServerError, ErrUpstreamFetch},
		{"processing", NewProcessingError("decode labels", errors.New("boom")), http.StatusInternalServerError, ErrProcessing},
		{"plain", errors.New("boom"), http.StatusInternalServerError, ErrProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := HTTPStatus(tt.err)
			if status != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, status)
			}
			if code != tt.wantCode {
				t.Errorf("Expected code %s, got %s", tt.wantCode, code)
			}
		})
	}
}

func TestInvalidInputErrorDetail(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := fmt.Errorf("decoding body: %w", &InvalidInputError{Err: cause})

	if !errors.Is(err, cause) {
		t.Error("Expected InvalidInputError to unwrap to its cause")
	}
	if ErrorDetail(err) != "invalid input: unexpected EOF" {
		t.Errorf("Unexpected detail %q", ErrorDetail(err))
	}
}

func TestUpstreamFetchError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &UpstreamFetchError{Source: SOURCE_BAI, URL: "http://example.invalid", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("Expected UpstreamFetchError to unwrap to its cause")
	}
	if err.Error() != "fetching BAI data: connection refused" {
		t.Errorf("Unexpected message %q", err.Error())
	}

	statusErr := &UpstreamFetchError{Source: SOURCE_PHQ9, StatusCode: 404}
	if statusErr.Error() != "fetching PHQ9 data: unexpected status 404" {
		t.Errorf("Unexpected message %q", statusErr.Error())
	}
}

func TestProcessingErrorDetail(t *testing.T) {
	err := NewProcessingError("select phrases", errors.New(`unknown phrase category "Well-Being"`))
	expected := `Error processing data: select phrases: unknown phrase category "Well-Being"`
	if ErrorDetail(err) != expected {
		t.Errorf("Expected %q, got %q", expected, ErrorDetail(err))
	}
}

func TestErrorConstants(t *testing.T) {
	constants := map[string]string{
		"ErrInvalidInput":   ErrInvalidInput,
		"ErrClientNotFound": ErrClientNotFound,
		"ErrUpstreamFetch":  ErrUpstreamFetch,
		"ErrProcessing":     ErrProcessing,
		"ErrRateLimit":      ErrRateLimit,
		"ErrInternalServer": ErrInternalServer,
		"ErrValidation":     ErrValidation,
	}

	expectedValues := map[string]string{
		"ErrInvalidInput":   "INVALID_INPUT",
		"ErrClientNotFound": "CLIENT_NOT_FOUND",
		"ErrUpstreamFetch":  "UPSTREAM_FETCH_ERROR",
		"ErrProcessing":     "PROCESSING_ERROR",
		"ErrRateLimit":      "RATE_LIMIT_EXCEEDED",
		"ErrInternalServer": "INTERNAL_SERVER_ERROR",
		"ErrValidation":     "VALIDATION_ERROR",
	}

	for name, actual := range constants {
		expected := expectedValues[name]
		if actual != expected {
			t.Errorf("Expected %s to be %s, got %s", name, expected, actual)
		}
	}
}
