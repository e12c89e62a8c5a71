package admin

import (
	"fmt"

	"dbforge-admin/internal/schema"
)

// AppError is the JSON error envelope every console endpoint returns.
// Validation failures carry the field-scoped violations so the UI can
// attach messages to individual inputs.
type AppError struct {
	Code       string             `json:"code"`
	Status     int                `json:"-"`
	Message    string             `json:"message"`
	Violations []schema.Violation `json:"violations,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

type ErrorResponse struct {
	Error *AppError `json:"error"`
}

func NewAppError(code string, status int, msg string) *AppError {
	return &AppError{Code: code, Status: status, Message: msg}
}

func NotFoundError(resource, name string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Status:  404,
		Message: fmt.Sprintf("%s %s not found", resource, name),
	}
}

func ConflictError(resource, name string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Status:  409,
		Message: fmt.Sprintf("%s %s already exists", resource, name),
	}
}

func InvalidPayloadError() *AppError {
	return &AppError{Code: "INVALID_PAYLOAD", Status: 400, Message: "Invalid request body"}
}

func UnauthorizedError(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Status: 401, Message: msg}
}

func ForbiddenError(msg string) *AppError {
	return &AppError{Code: "FORBIDDEN", Status: 403, Message: msg}
}

func ValidationError(violations []schema.Violation) *AppError {
	return &AppError{
		Code:       "VALIDATION_FAILED",
		Status:     422,
		Message:    "Validation failed",
		Violations: violations,
	}
}
