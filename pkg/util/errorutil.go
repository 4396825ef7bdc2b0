package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes surfaced by the triage pipeline.
const (
	CodeValidation           = "VALIDATION_FAILED"
	CodeNotFound             = "NOT_FOUND"
	CodeInternal             = "INTERNAL_ERROR"
	CodeOracleUnavailable    = "ORACLE_UNAVAILABLE"
	CodeOracleMalformed      = "ORACLE_MALFORMED_RESPONSE"
	CodeConstraintViolation  = "CONSTRAINT_VIOLATION"
	CodeConfigurationMissing = "CONFIGURATION_MISSING"
	CodeInputEmpty           = "INPUT_EMPTY"
	CodeStorageFailure       = "STORAGE_FAILURE"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewOracleUnavailable reports a transport, auth, quota or deadline failure of the classifier.
func NewOracleUnavailable(err error) error {
	return &DomainError{
		Code:       CodeOracleUnavailable,
		Message:    "classification service unavailable",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewOracleMalformed reports a classifier response that does not fit the result shape.
func NewOracleMalformed(reason string, err error) error {
	return &DomainError{
		Code:       CodeOracleMalformed,
		Message:    "malformed classification response: " + reason,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewConstraintViolation(message string, details map[string]any, err error) error {
	return &DomainError{
		Code:       CodeConstraintViolation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
		Err:        err,
	}
}

// NewConfigurationMissing lists every required setting that was absent.
func NewConfigurationMissing(names []string) error {
	return &DomainError{
		Code:       CodeConfigurationMissing,
		Message:    "missing required configuration: " + strings.Join(names, ", "),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"missing": names},
	}
}

func NewInputEmpty(message string) error {
	return NewDomainError(CodeInputEmpty, message, http.StatusBadRequest, nil)
}

func NewStorageFailure(op string, err error) error {
	return &DomainError{
		Code:       CodeStorageFailure,
		Message:    op + " failed",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// CodeOf returns the code of the first DomainError in err's chain, or "" when there is none.
func CodeOf(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// HasCode reports whether err carries a DomainError with the given code.
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}
