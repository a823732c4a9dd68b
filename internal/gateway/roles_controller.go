package gateway

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/console/screens"
	"crm-console/pkg/api"
	apperrors "crm-console/pkg/errors"
)

type RolesController struct {
	base
}

func NewRolesController(manager *screens.Manager, logger *zap.Logger) *RolesController {
	return &RolesController{base: base{manager: manager, logger: logger.Named("roles-ctrl")}}
}

func (ctrl *RolesController) roles(c echo.Context) (*screens.Roles, error) {
	w, err := ctrl.workspace(c)
	if err != nil {
		return nil, err
	}
	return w.Roles(c.Request().Context())
}

func (ctrl *RolesController) OpenForm(c echo.Context) error {
	var dto FormOpenDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.roles(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	openForm(s.Form(), dto)
	return view(c, s.View())
}

func (ctrl *RolesController) CloseForm(c echo.Context) error {
	s, err := ctrl.roles(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s.Form().Close()
	return view(c, s.View())
}

func (ctrl *RolesController) Create(c echo.Context) error {
	var dto RoleDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.roles(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return mutationResponse(c, s.Create(c.Request().Context(), dto.RoleName))
}

func (ctrl *RolesController) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	var dto RoleDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.roles(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return mutationResponse(c, s.Update(c.Request().Context(), id, dto.RoleName))
}

func (ctrl *RolesController) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.roles(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return mutationResponse(c, s.Delete(c.Request().Context(), id))
}

// OpenDetail открывает роль вместе со списком её прав.
func (ctrl *RolesController) OpenDetail(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.roles(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return view(c, s.OpenDetail(c.Request().Context(), id))
}

func (ctrl *RolesController) CloseDetail(c echo.Context) error {
	s, err := ctrl.roles(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s.CloseDetail()
	return view(c, s.View())
}

func (ctrl *RolesController) AddPermission(c echo.Context) error {
	var dto RolePermissionDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.roles(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return mutationResponse(c, s.AddPermission(c.Request().Context(), dto.PermissionID))
}

func (ctrl *RolesController) RemovePermission(c echo.Context) error {
	raw := c.Param("permissionId")
	permissionID, err := strconv.Atoi(raw)
	if err != nil {
		return ctrl.fail(c, apperrors.NewHttpError(http.StatusBadRequest, "Invalid permission ID", err, map[string]interface{}{"param": raw}))
	}
	s, err := ctrl.roles(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return mutationResponse(c, s.RemovePermission(c.Request().Context(), permissionID))
}

func (ctrl *RolesController) PermissionOptions(c echo.Context) error {
	s, err := ctrl.roles(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	perms, err := s.PermissionOptions(c.Request().Context())
	if err != nil {
		return ctrl.fail(c, err)
	}
	return api.Success(c, http.StatusOK, "", perms)
}
