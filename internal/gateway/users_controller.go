package gateway

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/console/screens"
	"crm-console/pkg/api"
)

type UsersController struct {
	base
}

func NewUsersController(manager *screens.Manager, logger *zap.Logger) *UsersController {
	return &UsersController{base: base{manager: manager, logger: logger.Named("users-ctrl")}}
}

func (ctrl *UsersController) users(c echo.Context) (*screens.Users, error) {
	w, err := ctrl.workspace(c)
	if err != nil {
		return nil, err
	}
	return w.Users(c.Request().Context())
}

func (ctrl *UsersController) OpenForm(c echo.Context) error {
	var dto FormOpenDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.users(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	openForm(s.Form(), dto)
	return view(c, s.View())
}

func (ctrl *UsersController) CloseForm(c echo.Context) error {
	s, err := ctrl.users(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s.Form().Close()
	return view(c, s.View())
}

func (ctrl *UsersController) Create(c echo.Context) error {
	var dto CreateUserDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.users(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return mutationResponse(c, s.Create(c.Request().Context(), dto.toForm()))
}

func (ctrl *UsersController) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	var dto UpdateUserDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.users(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return mutationResponse(c, s.Update(c.Request().Context(), id, dto.toForm()))
}

func (ctrl *UsersController) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.users(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return mutationResponse(c, s.Delete(c.Request().Context(), id))
}

func (ctrl *UsersController) OpenDetail(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.users(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return view(c, s.OpenDetail(c.Request().Context(), id))
}

func (ctrl *UsersController) CloseDetail(c echo.Context) error {
	s, err := ctrl.users(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s.CloseDetail()
	return view(c, s.View())
}

type resetPasswordResponse struct {
	DefaultPassword string `json:"defaultPassword"`
}

func (ctrl *UsersController) ResetPassword(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.users(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	res, password := s.ResetPassword(c.Request().Context(), id)
	if !res.OK {
		return mutationResponse(c, res)
	}
	return api.Success(c, http.StatusOK, res.Message, resetPasswordResponse{DefaultPassword: password})
}

func (ctrl *UsersController) RoleOptions(c echo.Context) error {
	s, err := ctrl.users(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	roles, err := s.RoleOptions(c.Request().Context())
	if err != nil {
		return ctrl.fail(c, err)
	}
	return api.Success(c, http.StatusOK, "", roles)
}
