package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeForbidden   = "FORBIDDEN"
	CodeRateLimited = "RATE_LIMITED"
	CodeUnavailable = "UNAVAILABLE"
	CodeInternal    = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string  `json:"error"`
	Code    string  `json:"code,omitempty"`
	Details string  `json:"details,omitempty"`
	Notice  *Notice `json:"notice,omitempty"`
}

// AppError is a failure the API reports to clients with a stable code.
type AppError struct {
	Code    string
	Message string
	Err     error
	// Notice is the transient message the client shows for this failure, if any.
	Notice *Notice
	// RetryAfter is set on rate-limit errors.
	RetryAfter time.Duration
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

// WithNotice attaches a user-facing notice and returns the same error.
func (e *AppError) WithNotice(n Notice) *AppError {
	e.Notice = &n
	return e
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewForbiddenError reports a feature the client is not allowed to use.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewRateLimitError reports an exhausted write budget that refills in retryAfter.
func NewRateLimitError(retryAfter time.Duration) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    "rate limit exceeded",
		RetryAfter: retryAfter,
	}
}

// NewUnavailableError wraps a dependency outage the request cannot work around.
func NewUnavailableError(what string, err error) *AppError {
	return &AppError{Code: CodeUnavailable, Message: what + " unavailable", Err: err}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError writes err as an ErrorResponse. Wrapped causes are only
// exposed for client-side errors; internal failures stay in the logs.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
	}

	response := ErrorResponse{
		Error:  appErr.Message,
		Code:   appErr.Code,
		Notice: appErr.Notice,
	}
	if appErr.Err != nil && status < fiber.StatusInternalServerError {
		response.Details = appErr.Err.Error()
	}
	if appErr.RetryAfter > 0 {
		secs := int(appErr.RetryAfter.Round(time.Second) / time.Second)
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(max(secs, 1)))
	}
	return c.Status(status).JSON(response)
}

// StatusFor maps an error to the HTTP status the API answers with.
func StatusFor(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeRateLimited:
		return fiber.StatusTooManyRequests
	case CodeUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
