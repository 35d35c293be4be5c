package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes surfaced by the workflow core and services.
const (
	CodeIllegalTransition = "ILLEGAL_TRANSITION"
	CodeMissingAssignment = "MISSING_ASSIGNMENT"
	CodeUnknownOfficer    = "UNKNOWN_OFFICER"
	CodeDuplicateEmail    = "DUPLICATE_EMAIL"
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// ErrorCodeOf returns the AppError code for err, or CodeInternal for
// errors outside the AppError family.
func ErrorCodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// NewIllegalTransitionError signals that the target stage is not reachable
// from the request's current stage.
func NewIllegalTransitionError(from, to Stage) *AppError {
	return &AppError{
		Code:    CodeIllegalTransition,
		Message: fmt.Sprintf("cannot move request from %q to %q", from, to),
	}
}

// NewMissingAssignmentError signals an assignment transition without an officer.
func NewMissingAssignmentError() *AppError {
	return &AppError{
		Code:    CodeMissingAssignment,
		Message: "an officer must be selected when assigning a request",
	}
}

// NewUnknownOfficerError signals an officer ID that does not resolve.
func NewUnknownOfficerError(id uint) *AppError {
	return &AppError{
		Code:    CodeUnknownOfficer,
		Message: fmt.Sprintf("officer %d does not exist", id),
	}
}

// NewDuplicateEmailError signals an officer email collision.
func NewDuplicateEmailError(email string) *AppError {
	return &AppError{
		Code:    CodeDuplicateEmail,
		Message: fmt.Sprintf("an officer with email %q already exists", email),
	}
}

// NewConflictError signals a lost optimistic-concurrency race.
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
