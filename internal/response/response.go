package response

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Error codes shared by services and handlers
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// ContextKeyErrorCode is where SendError leaves the code for the request logger
const ContextKeyErrorCode = "error_code"

// AppError is the error type services return for expected failures.
// Details is logged but never sent to clients.
type AppError struct {
	Code    string
	Message string
	Details string
	Fields  []string
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewValidationError reports the first failing field's message and lists all failing fields
func NewValidationError(message string, fields ...string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Fields: fields}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: ErrCodeForbidden, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: ErrCodeAlreadyExists, Message: message}
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error      string   `json:"error" example:"Resolution remarks are required"`
	Fields     []string `json:"fields,omitempty"`
	RetryAfter int      `json:"retryAfter,omitempty"`
}

// SendSuccess writes data as the response body
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// SendError writes an error body and aborts the handler chain
func SendError(c *gin.Context, status int, code, message string) {
	c.Set(ContextKeyErrorCode, code)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// SendValidationError writes a 400 carrying the list of failing fields
func SendValidationError(c *gin.Context, status int, message string, fields []string) {
	c.Set(ContextKeyErrorCode, ErrCodeValidation)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Fields: fields})
}
