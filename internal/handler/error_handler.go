package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecity-api/internal/auth"
	"ecity-api/internal/middleware"
	"ecity-api/internal/response"
)

// handleServiceError maps service layer errors to HTTP responses. The cause
// is attached to the gin context for the request logger and never sent.
func handleServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
		return
	}

	var appErr *response.AppError
	if errors.As(err, &appErr) {
		status := mapErrorCodeToHTTPStatus(appErr.Code)
		switch {
		case appErr.Code == response.ErrCodeValidation:
			response.SendValidationError(c, status, appErr.Message, appErr.Fields)
		case status == http.StatusInternalServerError:
			response.SendError(c, status, response.ErrCodeInternal, "Internal server error")
		default:
			response.SendError(c, status, appErr.Code, appErr.Message)
		}
		return
	}

	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case response.ErrCodeNotFound:
		return http.StatusNotFound
	case response.ErrCodeAlreadyExists:
		return http.StatusConflict
	case response.ErrCodeValidation:
		return http.StatusBadRequest
	case response.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case response.ErrCodeForbidden:
		return http.StatusForbidden
	case response.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// parseID reads a UUID path parameter and answers 400 when it is malformed
func parseID(c *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.SendValidationError(c, http.StatusBadRequest, "Invalid "+label+" ID", []string{param})
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body and answers 400 when it is not valid JSON
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(err)
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return false
	}
	return true
}

// requireIdentity returns the caller set by the auth middleware
func requireIdentity(c *gin.Context) (auth.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return auth.Identity{}, false
	}
	return identity, true
}
