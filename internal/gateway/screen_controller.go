package gateway

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/console/screens"
	"crm-console/pkg/api"
)

// ScreenController - операции списка, одинаковые для всех экранов.
type ScreenController struct {
	base
}

func NewScreenController(manager *screens.Manager, logger *zap.Logger) *ScreenController {
	return &ScreenController{base: base{manager: manager, logger: logger.Named("screen-ctrl")}}
}

// apply выполняет операцию над экраном из пути и отвечает его состоянием.
func (ctrl *ScreenController) apply(c echo.Context, op func(s screens.Screen) (screens.View, error)) error {
	w, err := ctrl.workspace(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	v, err := w.Apply(c.Request().Context(), c.Param("screen"), op)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return view(c, v)
}

func pure(fn func(s screens.Screen) screens.View) func(screens.Screen) (screens.View, error) {
	return func(s screens.Screen) (screens.View, error) { return fn(s), nil }
}

// Mount монтирует экран (первый запрос списка) или отдаёт его текущее состояние.
func (ctrl *ScreenController) Mount(c echo.Context) error {
	w, err := ctrl.workspace(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	v, err := w.Mount(c.Request().Context(), c.Param("screen"))
	if err != nil {
		return ctrl.fail(c, err)
	}
	return view(c, v)
}

func (ctrl *ScreenController) Unmount(c echo.Context) error {
	w, err := ctrl.workspace(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	w.Unmount(c.Param("screen"))
	return api.Success(c, http.StatusOK, "", nil)
}

func (ctrl *ScreenController) Search(c echo.Context) error {
	var dto SearchDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	ctx := c.Request().Context()
	return ctrl.apply(c, pure(func(s screens.Screen) screens.View { return s.Search(ctx, dto.Value) }))
}

func (ctrl *ScreenController) StatusFilter(c echo.Context) error {
	var dto StatusFilterDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	ctx := c.Request().Context()
	return ctrl.apply(c, pure(func(s screens.Screen) screens.View { return s.StatusFilter(ctx, dto.Status) }))
}

func (ctrl *ScreenController) Filter(c echo.Context) error {
	var dto FilterDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	ctx := c.Request().Context()
	return ctrl.apply(c, func(s screens.Screen) (screens.View, error) {
		v, err := s.Filter(ctx, dto.Name, dto.Value)
		if err != nil {
			return screens.View{}, badRequest(err, "Unsupported filter")
		}
		return v, nil
	})
}

func (ctrl *ScreenController) Sort(c echo.Context) error {
	var dto SortDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	ctx := c.Request().Context()
	return ctrl.apply(c, pure(func(s screens.Screen) screens.View { return s.Sort(ctx, dto.Field) }))
}

func (ctrl *ScreenController) Page(c echo.Context) error {
	var dto PageDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	ctx := c.Request().Context()
	return ctrl.apply(c, pure(func(s screens.Screen) screens.View { return s.Page(ctx, dto.Page) }))
}

func (ctrl *ScreenController) Limit(c echo.Context) error {
	var dto LimitDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	ctx := c.Request().Context()
	return ctrl.apply(c, pure(func(s screens.Screen) screens.View { return s.Limit(ctx, dto.Limit) }))
}

func (ctrl *ScreenController) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	return ctrl.apply(c, pure(func(s screens.Screen) screens.View { return s.Clear(ctx) }))
}

func (ctrl *ScreenController) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	return ctrl.apply(c, pure(func(s screens.Screen) screens.View { return s.Refresh(ctx) }))
}
