package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced by the lifecycle engine.
const (
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeMissingResolution   = "MISSING_RESOLUTION"
	CodeHasDependents       = "HAS_DEPENDENTS"
	CodePersistenceFailure  = "PERSISTENCE_FAILURE"
	CodeNotFound            = "NOT_FOUND"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeConflict            = "CONFLICT"
	CodeInternal            = "INTERNAL_ERROR"
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

// NewInvalidTransition flags a status pair outside the variant's table.
func NewInvalidTransition(collection, from, to string) error {
	return NewDomainError(CodeInvalidTransition,
		fmt.Sprintf("transition %q -> %q is not allowed", from, to),
		http.StatusUnprocessableEntity,
		map[string]any{"collection": collection, "estadoAnterior": from, "estadoNuevo": to})
}

// NewMissingResolution flags a gated transition attempted without a solution.
func NewMissingResolution(collection, to string) error {
	return NewDomainError(CodeMissingResolution,
		fmt.Sprintf("transition to %q requires a resolution report", to),
		http.StatusUnprocessableEntity,
		map[string]any{"collection": collection, "estadoNuevo": to})
}

// NewHasDependents flags a delete blocked by the cascade guard.
func NewHasDependents(id string, dependents map[string]any) error {
	return NewDomainError(CodeHasDependents,
		fmt.Sprintf("%s has linked work items; detach or cascade explicitly", id),
		http.StatusConflict, dependents)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
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

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// HasCode reports whether err is a DomainError with the given code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
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

func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
