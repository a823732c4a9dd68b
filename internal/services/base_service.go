package services

import (
	"context"
	"time"

	"crm-console/pkg/contextkeys"
	apperrors "crm-console/pkg/errors"
)

const timeLayout = time.RFC3339

// actorID - пользователь текущего запроса, его кладёт AuthMiddleware.
func actorID(ctx context.Context) (int, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(int)
	if !ok || id <= 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return id, nil
}

// fieldError - отказ с сообщением у конкретного поля формы.
func fieldError(field, message string) *apperrors.ApplicationError {
	return apperrors.NewApplicationError("Validation failed", map[string][]string{field: {message}})
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}
