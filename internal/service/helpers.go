package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"ecity-api/internal/realtime"
	"ecity-api/internal/response"
)

// EventPublisher receives issue events for the live feed
type EventPublisher interface {
	Publish(evt realtime.Event)
}

// lookupError maps a repository error to NotFound or an internal AppError
func lookupError(err error, notFoundMsg, failMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewNotFoundError(notFoundMsg)
	}
	return response.NewAppError(response.ErrCodeInternal, failMsg, err.Error())
}

func internalError(msg string, err error) error {
	return response.NewAppError(response.ErrCodeInternal, msg, err.Error())
}

// isUniqueViolation reports a unique constraint failure from postgres or sqlite
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
