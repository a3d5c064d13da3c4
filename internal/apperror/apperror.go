// Package apperror defines the error taxonomy shared by services and handlers.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ConflictError signals that an operation violates a uniqueness or
// single-open-interval invariant, e.g. punching in while already punched in.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// Conflictf builds a ConflictError from a format string.
func Conflictf(format string, args ...any) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a referenced record does not resolve, or that no
// active time entry exists where one is required.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// NotFoundf builds a NotFoundError from a format string.
func NotFoundf(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// CaptureError signals a failed manual screenshot capture or upload. Periodic
// capture failures are logged by the session loop and never wrapped in this.
type CaptureError struct {
	Step string
	Err  error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("screenshot %s failed: %v", e.Step, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// HTTPStatus maps a service error to the response status code.
func HTTPStatus(err error) int {
	var (
		conflictErr   *ConflictError
		notFoundErr   *NotFoundError
		captureErr    *CaptureError
		validationErr validator.ValidationErrors
	)
	switch {
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &captureErr):
		return http.StatusBadGateway
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var tagMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"min":      "is too short",
	"max":      "is too long",
	"gte":      "must not be negative",
	"gt":       "must be a positive number",
	"oneof":    "is not an allowed value",
	"gtfield":  "must be after its start field",
}

// CustomValidationError converts validator errors into a standardized format.
func CustomValidationError(err error) []map[string]string {
	errList := make([]map[string]string, 0)

	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		for _, e := range validationErr {
			errMsg := fmt.Sprintf("%s is invalid", e.StructNamespace())
			if v, ok := tagMessages[e.Tag()]; ok {
				errMsg = v
			}
			errList = append(errList, map[string]string{e.Field(): errMsg})
		}
	}
	return errList
}
