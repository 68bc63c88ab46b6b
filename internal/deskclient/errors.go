package deskclient

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening on the desk address
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeHTTP indicates a non-success status code
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed response body
	ErrTypeParse
	// ErrTypeAPI indicates the desk answered with success=false
	ErrTypeAPI
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeAPI:
		return "API Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DeskError represents an error that occurred while talking to a desk
type DeskError struct {
	Type       ErrorType
	Message    string
	StatusCode int    // HTTP status code, when applicable
	Code       string // API error code, e.g. "VALIDATION_ERROR"
	Err        error
	Retryable  bool
}

// Error implements the error interface
func (e *DeskError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeskError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError maps a transport error to a DeskError
func ClassifyNetworkError(err error) *DeskError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &DeskError{Type: ErrTypeTimeout, Message: "Request timed out", Err: err, Retryable: true}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &DeskError{
			Type:    ErrTypeDNS,
			Message: fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:     err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &DeskError{Type: ErrTypeConnectionRefused, Message: "Desk refused connection", Err: err, Retryable: true}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != err {
		return ClassifyNetworkError(urlErr.Err)
	}

	return &DeskError{Type: ErrTypeNetwork, Message: "Network error occurred", Err: err, Retryable: true}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *DeskError {
	classified := ClassifyNetworkError(err)
	if classified == nil {
		return &DeskError{Type: ErrTypeNetwork, Message: message, Retryable: true}
	}
	classified.Message = message
	return classified
}

// NewHTTPError creates an HTTP-level error. Server errors are retryable.
func NewHTTPError(statusCode int, message string) *DeskError {
	return &DeskError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  statusCode >= http.StatusInternalServerError,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *DeskError {
	return &DeskError{Type: ErrTypeParse, Message: message, Err: err}
}

// NewAPIError creates an error from a success=false envelope
func NewAPIError(statusCode int, code, message string) *DeskError {
	return &DeskError{Type: ErrTypeAPI, Message: message, StatusCode: statusCode, Code: code}
}

func asDeskError(err error) (*DeskError, bool) {
	var de *DeskError
	ok := errors.As(err, &de)
	return de, ok
}

// IsNetworkError reports whether err is a transport-level failure
func IsNetworkError(err error) bool {
	de, ok := asDeskError(err)
	if !ok {
		return false
	}
	switch de.Type {
	case ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS:
		return true
	}
	return false
}

// IsAPIError reports whether the desk rejected the request
func IsAPIError(err error) bool {
	de, ok := asDeskError(err)
	return ok && de.Type == ErrTypeAPI
}

// IsRetryable reports whether the request may succeed if repeated
func IsRetryable(err error) bool {
	de, ok := asDeskError(err)
	return ok && de.Retryable
}
