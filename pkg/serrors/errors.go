package serrors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// BaseError is a structured error carrying a stable machine-readable
// code, a human-readable message and a locale key for translation.
type BaseError struct {
	Code         string
	Message      string
	LocaleKey    string
	Status       int
	TemplateData map[string]string
}

func (e *BaseError) Error() string {
	return e.Message
}

func (e *BaseError) WithTemplateData(data map[string]string) *BaseError {
	e.TemplateData = data
	return e
}

func (e *BaseError) WithStatus(status int) *BaseError {
	e.Status = status
	return e
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
		Status:    http.StatusInternalServerError,
	}
}

// NewAuthorizationError indicates the caller lacks an applicable scope
// for the operation or the specific row. Never retried.
func NewAuthorizationError(message string) *BaseError {
	return NewError("AUTHZ_FORBIDDEN", message, "Authorization.PermissionDenied").
		WithStatus(http.StatusForbidden)
}

// NewNotFoundError indicates a referenced entity is absent.
func NewNotFoundError(message string) *BaseError {
	return NewError("NOT_FOUND", message, "Errors.NotFound").
		WithStatus(http.StatusNotFound)
}

// NewValidationError indicates the request violates a business rule.
// Detail suitable for client display goes into the message.
func NewValidationError(message string) *BaseError {
	return NewError("VALIDATION_ERROR", message, "Errors.Validation").
		WithStatus(http.StatusBadRequest)
}

func NewFieldRequiredError(field, localeKey string) *BaseError {
	return NewError("FIELD_REQUIRED", fmt.Sprintf("field %q is required", field), localeKey).
		WithStatus(http.StatusBadRequest).
		WithTemplateData(map[string]string{"field": field})
}

// ValidationErrors aggregates per-field errors keyed by field name.
type ValidationErrors map[string]*BaseError

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field].Message))
	}
	return strings.Join(parts, "; ")
}

func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
