package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeStore represents document store errors
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeLLM represents LLM runtime errors
	ErrorTypeLLM ErrorType = "llm"
	// ErrorTypeMemory represents memory extraction/retrieval errors
	ErrorTypeMemory ErrorType = "memory"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeReport represents error-reporting delivery errors
	ErrorTypeReport ErrorType = "report"
	// ErrorTypeAuth represents authorization errors
	ErrorTypeAuth ErrorType = "auth"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// ErrType returns the error category. Errors embedding BaseError pick this
// up by promotion, which is what IsErrorType matches on.
func (e *BaseError) ErrType() ErrorType {
	return e.Type
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Store Errors

// ErrStoreNotConnected is returned when a store operation is attempted
// before Connect succeeds
var ErrStoreNotConnected = NewBaseError(ErrorTypeStore, "memory store not connected", nil)

// ErrStoreConnectionFailed is returned when the MongoDB connection fails
type ErrStoreConnectionFailed struct {
	*BaseError
	URI      string
	Attempts int
}

func NewStoreConnectionFailed(uri string, attempts int, err error) *ErrStoreConnectionFailed {
	return &ErrStoreConnectionFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("failed to connect to MongoDB after %d attempts", attempts), err),
		URI:       uri,
		Attempts:  attempts,
	}
}

// ErrStoreWriteFailed is returned when an upsert or insert fails
type ErrStoreWriteFailed struct {
	*BaseError
	Collection string
}

func NewStoreWriteFailed(collection string, err error) *ErrStoreWriteFailed {
	return &ErrStoreWriteFailed{
		BaseError:  NewBaseError(ErrorTypeStore, fmt.Sprintf("write to %s failed", collection), err),
		Collection: collection,
	}
}

// ErrStoreQueryFailed is returned when a find fails
type ErrStoreQueryFailed struct {
	*BaseError
	Collection string
}

func NewStoreQueryFailed(collection string, err error) *ErrStoreQueryFailed {
	return &ErrStoreQueryFailed{
		BaseError:  NewBaseError(ErrorTypeStore, fmt.Sprintf("query on %s failed", collection), err),
		Collection: collection,
	}
}

// LLM Errors

// ErrLLMRequestFailed is returned when a request to the LLM runtime fails
type ErrLLMRequestFailed struct {
	*BaseError
	Provider string
	Model    string
}

func NewLLMRequestFailed(provider, model string, err error) *ErrLLMRequestFailed {
	return &ErrLLMRequestFailed{
		BaseError: NewBaseError(ErrorTypeLLM, fmt.Sprintf("%s request failed for model %s", provider, model), err),
		Provider:  provider,
		Model:     model,
	}
}

// ErrLLMEmptyResponse is returned when the LLM runtime returns no content
var ErrLLMEmptyResponse = NewBaseError(ErrorTypeLLM, "no response from LLM runtime", nil)

// Auth Errors

// ErrUnauthorized is returned on a missing or invalid bearer password
var ErrUnauthorized = NewBaseError(ErrorTypeAuth, "invalid or missing API password", nil)

// ErrTrialExhausted is returned when an unauthenticated caller runs out of
// trial requests
var ErrTrialExhausted = NewBaseError(ErrorTypeAuth, "trial requests exhausted", nil)

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Report Errors

// ErrReportDeliveryFailed is returned when an error report cannot be delivered
type ErrReportDeliveryFailed struct {
	*BaseError
	Backend string
}

func NewReportDeliveryFailed(backend string, err error) *ErrReportDeliveryFailed {
	return &ErrReportDeliveryFailed{
		BaseError: NewBaseError(ErrorTypeReport, fmt.Sprintf("failed to deliver report to %s", backend), err),
		Backend:   backend,
	}
}

// Helper functions

// IsErrorType checks if an error is of a specific type, looking through
// wrapped errors.
func IsErrorType(err error, errType ErrorType) bool {
	var typed interface{ ErrType() ErrorType }
	if stderrors.As(err, &typed) {
		return typed.ErrType() == errType
	}
	return false
}
