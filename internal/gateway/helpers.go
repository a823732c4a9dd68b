// Package gateway is the console's HTTP surface: login and session handling,
// the generic list operations shared by every screen, per-entity record and
// detail operations, the report export and the websocket push channel.
package gateway

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/console/mutation"
	"crm-console/internal/console/screens"
	"crm-console/internal/console/session"
	"crm-console/pkg/api"
	apperrors "crm-console/pkg/errors"
)

// base - общее для всех контроллеров консоли.
type base struct {
	manager *screens.Manager
	logger  *zap.Logger
}

func (b *base) workspace(c echo.Context) (*screens.Workspace, error) {
	sess := session.FromContext(c)
	if sess == nil {
		return nil, apperrors.ErrSessionNotFound
	}
	return b.manager.For(sess.ID, sess), nil
}

func (b *base) fail(c echo.Context, err error) error {
	return api.ErrorResponse(c, err, b.logger)
}

func bindAndValidate(c echo.Context, dto any) error {
	if err := c.Bind(dto); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil)
	}
	return c.Validate(dto)
}

func idParam(c echo.Context) (int, error) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		if err == nil {
			err = apperrors.ErrBadRequest
		}
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "Invalid ID", err, map[string]interface{}{"param": raw})
	}
	return id, nil
}

// badRequest превращает ErrBadRequest экранов в ответ 400 с понятным текстом.
func badRequest(err error, msg string) error {
	if errors.Is(err, apperrors.ErrBadRequest) {
		return apperrors.NewHttpError(http.StatusBadRequest, msg, err, nil)
	}
	return err
}

// mutationResponse: успех - 200, отказ сервера - 422 с ошибками полей.
func mutationResponse(c echo.Context, res mutation.Result) error {
	if res.OK {
		return api.Success(c, http.StatusOK, res.Message, res)
	}
	resp := api.Response{Status: api.StatusError, Msg: res.Message, Data: res}
	if len(res.FieldErrors) > 0 {
		resp.Errors = make(map[string][]string, len(res.FieldErrors))
		for field, msg := range res.FieldErrors {
			resp.Errors[field] = []string{msg}
		}
	}
	return c.JSON(http.StatusUnprocessableEntity, resp)
}

func view(c echo.Context, v screens.View) error {
	return api.Success(c, http.StatusOK, "", v)
}
