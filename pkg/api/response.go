package api

import (
	"encoding/json"
	"errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "crm-console/pkg/errors"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Request - тело любого запроса к CRM API: {"inputData": {...}}.
type Request[T any] struct {
	InputData T `json:"inputData"`
}

type PaginationMeta struct {
	TotalPages int    `json:"totalPages"`
	Page       int    `json:"page,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	TotalCount uint64 `json:"totalCount,omitempty"`
}

// Response - конверт ответа CRM API.
type Response struct {
	Status          string              `json:"status"`
	Msg             string              `json:"msg,omitempty"`
	Data            any                 `json:"data,omitempty"`
	Errors          map[string][]string `json:"errors,omitempty"`
	TotalPages      int                 `json:"totalPages,omitempty"`
	TotalCount      uint64              `json:"totalCount,omitempty"`
	Pagination      *PaginationMeta     `json:"pagination,omitempty"`
	Page            *string             `json:"page,omitempty"`
	DefaultPassword string              `json:"defaultPassword,omitempty"`
}

// Envelope - тот же конверт на стороне клиента, data остаётся сырым
// до разбора адаптером конкретного эндпоинта.
type Envelope struct {
	Status          string              `json:"status"`
	Msg             string              `json:"msg"`
	Data            json.RawMessage     `json:"data"`
	Errors          map[string][]string `json:"errors"`
	TotalPages      int                 `json:"totalPages"`
	TotalCount      uint64              `json:"totalCount"`
	Pagination      *PaginationMeta     `json:"pagination"`
	Page            *string             `json:"page"`
	DefaultPassword string              `json:"defaultPassword"`
}

func (e *Envelope) IsSuccess() bool { return e.Status == StatusSuccess }

// ReportedTotalPages берёт totalPages из корня или из pagination. 0 - сервер не сообщил.
func (e *Envelope) ReportedTotalPages() int {
	if e.TotalPages > 0 {
		return e.TotalPages
	}
	if e.Pagination != nil && e.Pagination.TotalPages > 0 {
		return e.Pagination.TotalPages
	}
	return 0
}

func Success(c echo.Context, code int, msg string, data any) error {
	return c.JSON(code, Response{Status: StatusSuccess, Msg: msg, Data: data})
}

// SuccessList отдаёт страницу списка с totalPages, посчитанным из общего количества.
func SuccessList[T any](c echo.Context, msg string, list []T, total uint64, page, limit int) error {
	if list == nil {
		list = make([]T, 0)
	}
	return c.JSON(200, Response{
		Status:     StatusSuccess,
		Msg:        msg,
		Data:       list,
		TotalPages: TotalPages(total, limit),
		TotalCount: total,
	})
}

// TotalPages - не меньше одной страницы даже для пустого результата.
func TotalPages(total uint64, limit int) int {
	if limit <= 0 || total == 0 {
		return 1
	}
	return int((total + uint64(limit) - 1) / uint64(limit))
}

// ErrorResponse пишет конверт со status "error". Ошибки валидации уходят в поле errors.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	code := apperrors.StatusCode(err)
	resp := Response{Status: StatusError, Msg: apperrors.UserMessage(err, "Internal server error")}

	var appErr *apperrors.ApplicationError
	if errors.As(err, &appErr) {
		resp.Errors = appErr.Fields
	}

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) && logger != nil {
		fields := []zap.Field{zap.Int("code", httpErr.Code), zap.Error(httpErr.Err)}
		for k, v := range httpErr.Context {
			fields = append(fields, zap.Any(k, v))
		}
		logger.Warn(httpErr.Message, fields...)
	} else if code >= 500 && logger != nil {
		logger.Error("Необработанная ошибка", zap.Error(err), zap.String("uri", c.Request().RequestURI))
	}

	return c.JSON(code, resp)
}
