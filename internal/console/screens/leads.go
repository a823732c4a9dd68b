package screens

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"crm-console/internal/console/detail"
	"crm-console/internal/console/listing"
	"crm-console/internal/console/mutation"
	"crm-console/internal/console/query"
	"crm-console/internal/crmclient"
	apperrors "crm-console/pkg/errors"
)

// LeadsAPI - эндпоинты лидов, которыми пользуется экран.
type LeadsAPI interface {
	ListLeads(ctx context.Context, q query.State) (listing.Page[crmclient.Lead], error)
	GetLead(ctx context.Context, id int) (crmclient.Lead, error)
	CreateLead(ctx context.Context, form crmclient.LeadForm) (string, error)
	UpdateLead(ctx context.Context, id int, form crmclient.LeadForm) (string, error)
	DeleteLead(ctx context.Context, id int) (string, error)
	ChangeLeadStatus(ctx context.Context, change crmclient.StatusChange) (string, error)
	LeadStatuses(ctx context.Context) ([]crmclient.LeadStatus, error)
}

type LeadDetailView struct {
	detail.Snapshot[crmclient.Lead]
	StatusErrors map[string]string `json:"statusErrors,omitempty"`
}

type Leads struct {
	*List[crmclient.Lead]
	api      LeadsAPI
	detail   *detail.Cache[crmclient.Lead]
	status   *FormState
	protocol *mutation.Protocol

	mu       sync.Mutex
	statuses []crmclient.LeadStatus
}

func NewLeads(api LeadsAPI, protocol *mutation.Protocol, changed ChangeFunc, logger *zap.Logger) *Leads {
	s := &Leads{
		List:     newList(NameLeads, api.ListLeads, changed, logger),
		api:      api,
		detail:   detail.NewCache("Lead", api.GetLead, logger),
		status:   NewFormState(),
		protocol: protocol,
	}
	// форма статуса - это черновик открытой детали, сама деталь остаётся открытой
	s.status.onClose = s.detail.ResetDraft
	s.detailView = s.detailSnapshot
	return s
}

func (s *Leads) detailSnapshot() any {
	return LeadDetailView{Snapshot: s.detail.Snapshot(), StatusErrors: s.status.Snapshot().Errors}
}

func (s *Leads) Create(ctx context.Context, form crmclient.LeadForm) mutation.Result {
	return s.protocol.Run(ctx, mutation.Request{
		Action:         "create lead",
		Submit:         func(ctx context.Context) (string, error) { return s.api.CreateLead(ctx, form) },
		RefreshList:    s.refreshList,
		Form:           s.form,
		SuccessMessage: "Lead created successfully",
		FailureMessage: "Failed to create lead",
	})
}

func (s *Leads) Update(ctx context.Context, id int, form crmclient.LeadForm) mutation.Result {
	return s.protocol.Run(ctx, mutation.Request{
		Action:         "update lead",
		Submit:         func(ctx context.Context) (string, error) { return s.api.UpdateLead(ctx, id, form) },
		ReloadDetail:   reloadIfOpen(s.detail, id, func() { s.notify(PartDetail) }),
		RefreshList:    s.refreshList,
		Form:           s.form,
		SuccessMessage: "Lead updated successfully",
		FailureMessage: "Failed to update lead",
	})
}

func (s *Leads) Delete(ctx context.Context, id int) mutation.Result {
	return s.protocol.Run(ctx, mutation.Request{
		Action: "delete lead",
		Submit: func(ctx context.Context) (string, error) { return s.api.DeleteLead(ctx, id) },
		ReloadDetail: func(context.Context) {
			if s.detail.CurrentID() == id {
				s.CloseDetail()
			}
		},
		RefreshList:    s.refreshList,
		SuccessMessage: "Lead deleted successfully",
		FailureMessage: "Failed to delete lead",
	})
}

func (s *Leads) OpenDetail(ctx context.Context, id int) View {
	s.status.Close()
	s.detail.Open(ctx, id)
	s.notify(PartDetail)
	return s.View()
}

func (s *Leads) CloseDetail() {
	s.detail.Close()
	s.status.Close()
	s.notify(PartDetail)
}

func (s *Leads) Detail() detail.Snapshot[crmclient.Lead] { return s.detail.Snapshot() }

// SetStatusDraft запоминает выбранный статус и комментарий для открытого лида.
func (s *Leads) SetStatusDraft(status, comment string) error {
	return s.detail.SetDraft(status, comment)
}

// Statuses - статусы, которые сервер разрешает выбрать. Список кэшируется
// до первого успешного ответа.
func (s *Leads) Statuses(ctx context.Context) ([]crmclient.LeadStatus, error) {
	s.mu.Lock()
	cached := s.statuses
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	statuses, err := s.api.LeadStatuses(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.statuses = statuses
	s.mu.Unlock()
	return statuses, nil
}

// ChangeStatus отправляет черновик статуса открытого лида. При успехе
// перечитывается деталь (новая запись истории), затем список.
func (s *Leads) ChangeStatus(ctx context.Context) mutation.Result {
	id := s.detail.CurrentID()
	draft := s.detail.Draft()

	return s.protocol.Run(ctx, mutation.Request{
		Action: "update lead status",
		Submit: func(ctx context.Context) (string, error) {
			if id == 0 {
				return "", fmt.Errorf("лид не открыт: %w", apperrors.ErrBadRequest)
			}
			statusID, err := s.resolveStatus(ctx, draft.Status)
			if err != nil {
				return "", err
			}
			return s.api.ChangeLeadStatus(ctx, crmclient.StatusChange{
				LeadID:   id,
				Status:   draft.Status,
				StatusID: statusID,
				Comment:  draft.Comment,
			})
		},
		ReloadDetail:   reloadIfOpen(s.detail, id, func() { s.notify(PartDetail) }),
		RefreshList:    s.refreshList,
		Form:           s.status,
		SuccessMessage: "Lead status updated successfully",
		FailureMessage: "Failed to update lead status",
	})
}

func (s *Leads) resolveStatus(ctx context.Context, name string) (int, error) {
	statuses, err := s.Statuses(ctx)
	if err != nil {
		return 0, err
	}
	for _, st := range statuses {
		if st.Name == name {
			return st.ID.Int(), nil
		}
	}
	return 0, apperrors.NewApplicationError("Invalid status", map[string][]string{
		"status": {"Select one of the available statuses"},
	})
}

// Tracker - история статусов лида из строки списка, без открытия детали.
func (s *Leads) Tracker(ctx context.Context, id int) ([]crmclient.TrackerEvent, error) {
	lead, err := s.api.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead.Tracker == nil {
		return []crmclient.TrackerEvent{}, nil
	}
	return lead.Tracker, nil
}

func (s *Leads) Unmount() {
	s.detail.Close()
	s.status.Close()
	s.List.Unmount()
}
