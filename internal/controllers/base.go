package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/pkg/api"
	apperrors "crm-console/pkg/errors"
)

// bindInput разбирает {"inputData": ...} и валидирует содержимое.
func bindInput[T any](ctx echo.Context, logger *zap.Logger) (T, error) {
	var req api.Request[T]
	if err := ctx.Bind(&req); err != nil {
		logger.Warn("Ошибка разбора тела запроса", zap.String("path", ctx.Path()), zap.Error(err))
		return req.InputData, apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil)
	}
	if err := ctx.Validate(&req.InputData); err != nil {
		return req.InputData, err
	}
	return req.InputData, nil
}

func ok(ctx echo.Context, msg string) error {
	return api.Success(ctx, http.StatusOK, msg, nil)
}

// detail отдаёт запись массивом из одного элемента; отсутствующая запись - пустой массив.
func detail[T any](ctx echo.Context, item *T, err error, logger *zap.Logger) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return api.Success(ctx, http.StatusOK, "Record not found", []T{})
	}
	if err != nil {
		return api.ErrorResponse(ctx, err, logger)
	}
	return api.Success(ctx, http.StatusOK, "Successfully", []T{*item})
}
