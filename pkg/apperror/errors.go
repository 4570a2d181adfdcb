package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an application error so callers can branch on the
// failure stage without inspecting message strings.
type Kind int

const (
	KindUnknown Kind = iota
	// KindHardwareUnavailable means no printer was discovered.
	KindHardwareUnavailable
	// KindPersistenceFailure covers any backing-store read/write error.
	KindPersistenceFailure
	// KindPrintDeliveryFailure covers transport send errors.
	KindPrintDeliveryFailure
	// KindConfigurationMissing means required connection credentials are
	// absent. Fatal at startup; the process must not proceed.
	KindConfigurationMissing
	KindValidation
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindHardwareUnavailable:
		return "hardware_unavailable"
	case KindPersistenceFailure:
		return "persistence_failure"
	case KindPrintDeliveryFailure:
		return "print_delivery_failure"
	case KindConfigurationMissing:
		return "configuration_missing"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind as its string form in JSON responses.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// AppError represents an application error with a kind and HTTP status code
type AppError struct {
	Kind    Kind         `json:"kind"`
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// NewAppError creates a new application error
func NewAppError(kind Kind, code int, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

// NewHardwareUnavailable reports that no printer could be discovered.
func NewHardwareUnavailable(message string) *AppError {
	return &AppError{Kind: KindHardwareUnavailable, Code: http.StatusServiceUnavailable, Message: message}
}

// NewPersistenceFailure wraps a backing-store error.
func NewPersistenceFailure(message string, cause error) *AppError {
	return &AppError{Kind: KindPersistenceFailure, Code: http.StatusBadGateway, Message: message, cause: cause}
}

// NewPrintDeliveryFailure wraps a transport send error.
func NewPrintDeliveryFailure(message string, cause error) *AppError {
	return &AppError{Kind: KindPrintDeliveryFailure, Code: http.StatusBadGateway, Message: message, cause: cause}
}

// NewConfigurationMissing reports absent required configuration.
func NewConfigurationMissing(message string) *AppError {
	return &AppError{Kind: KindConfigurationMissing, Code: http.StatusInternalServerError, Message: message}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusUnprocessableEntity,
		Message: "Dados da requisicao invalidos",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Code: http.StatusNotFound, Message: resource + " nao encontrado"}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{Kind: KindValidation, Code: http.StatusBadRequest, Message: message}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Kind:    KindUnknown,
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
