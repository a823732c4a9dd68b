package gateway

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/console/screens"
)

type PermissionsController struct {
	base
}

func NewPermissionsController(manager *screens.Manager, logger *zap.Logger) *PermissionsController {
	return &PermissionsController{base: base{manager: manager, logger: logger.Named("permissions-ctrl")}}
}

func (ctrl *PermissionsController) permissions(c echo.Context) (*screens.Permissions, error) {
	w, err := ctrl.workspace(c)
	if err != nil {
		return nil, err
	}
	return w.Permissions(c.Request().Context())
}

func (ctrl *PermissionsController) OpenForm(c echo.Context) error {
	var dto FormOpenDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.permissions(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	openForm(s.Form(), dto)
	return view(c, s.View())
}

func (ctrl *PermissionsController) CloseForm(c echo.Context) error {
	s, err := ctrl.permissions(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s.Form().Close()
	return view(c, s.View())
}

func (ctrl *PermissionsController) Create(c echo.Context) error {
	var dto PermissionDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.permissions(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return mutationResponse(c, s.Create(c.Request().Context(), dto.toForm()))
}

func (ctrl *PermissionsController) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	var dto PermissionDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.permissions(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return mutationResponse(c, s.Update(c.Request().Context(), id, dto.toForm()))
}

func (ctrl *PermissionsController) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.permissions(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return mutationResponse(c, s.Delete(c.Request().Context(), id))
}

func (ctrl *PermissionsController) OpenDetail(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.permissions(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return view(c, s.OpenDetail(c.Request().Context(), id))
}

func (ctrl *PermissionsController) CloseDetail(c echo.Context) error {
	s, err := ctrl.permissions(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s.CloseDetail()
	return view(c, s.View())
}
