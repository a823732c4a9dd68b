package gateway

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crm-console/internal/console/screens"
	"crm-console/pkg/api"
)

type LeadsController struct {
	base
}

func NewLeadsController(manager *screens.Manager, logger *zap.Logger) *LeadsController {
	return &LeadsController{base: base{manager: manager, logger: logger.Named("leads-ctrl")}}
}

func (ctrl *LeadsController) leads(c echo.Context) (*screens.Leads, error) {
	w, err := ctrl.workspace(c)
	if err != nil {
		return nil, err
	}
	return w.Leads(c.Request().Context())
}

func (ctrl *LeadsController) OpenForm(c echo.Context) error {
	var dto FormOpenDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.leads(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	openForm(s.Form(), dto)
	return view(c, s.View())
}

func (ctrl *LeadsController) CloseForm(c echo.Context) error {
	s, err := ctrl.leads(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s.Form().Close()
	return view(c, s.View())
}

func (ctrl *LeadsController) Create(c echo.Context) error {
	var dto LeadFormDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.leads(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return mutationResponse(c, s.Create(c.Request().Context(), dto.toForm()))
}

func (ctrl *LeadsController) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	var dto LeadFormDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.leads(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return mutationResponse(c, s.Update(c.Request().Context(), id, dto.toForm()))
}

func (ctrl *LeadsController) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.leads(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return mutationResponse(c, s.Delete(c.Request().Context(), id))
}

func (ctrl *LeadsController) OpenDetail(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.leads(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return view(c, s.OpenDetail(c.Request().Context(), id))
}

func (ctrl *LeadsController) CloseDetail(c echo.Context) error {
	s, err := ctrl.leads(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s.CloseDetail()
	return view(c, s.View())
}

// ChangeStatus запоминает черновик и сразу отправляет его.
func (ctrl *LeadsController) ChangeStatus(c echo.Context) error {
	var dto StatusDraftDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.leads(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	if err := s.SetStatusDraft(dto.Status, dto.Comment); err != nil {
		return ctrl.fail(c, badRequest(err, "Open a lead before changing its status"))
	}
	return mutationResponse(c, s.ChangeStatus(c.Request().Context()))
}

func (ctrl *LeadsController) Statuses(c echo.Context) error {
	s, err := ctrl.leads(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	statuses, err := s.Statuses(c.Request().Context())
	if err != nil {
		return ctrl.fail(c, err)
	}
	return api.Success(c, http.StatusOK, "", statuses)
}

// Tracker - история статусов лида из строки списка.
func (ctrl *LeadsController) Tracker(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	s, err := ctrl.leads(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	events, err := s.Tracker(c.Request().Context(), id)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return api.Success(c, http.StatusOK, "", events)
}

func openForm(f *screens.FormState, dto FormOpenDTO) {
	if dto.Mode == string(screens.ModeEdit) {
		f.OpenEdit(dto.ID)
		return
	}
	f.OpenCreate()
}
