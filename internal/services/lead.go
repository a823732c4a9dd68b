package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"crm-console/internal/dto"
	"crm-console/internal/entities"
	"crm-console/internal/repositories"
	apperrors "crm-console/pkg/errors"
	"crm-console/pkg/types"
)

type LeadServiceInterface interface {
	List(ctx context.Context, payload dto.LeadFilterDataDTO) (*dto.ListResult[dto.LeadDTO], error)
	Assigned(ctx context.Context, payload dto.AssignedListDTO) (*dto.ListResult[dto.LeadDTO], error)
	// Get отдаёт лид вместе с историей статусов.
	Get(ctx context.Context, id int) (*dto.LeadDTO, error)
	Create(ctx context.Context, form dto.LeadFormDTO) (int, error)
	Update(ctx context.Context, id int, form dto.LeadFormDTO) error
	ChangeStatus(ctx context.Context, change dto.StatusChangeDTO) error
	Delete(ctx context.Context, id int) error
	Statuses(ctx context.Context) ([]dto.LeadStatusDTO, error)
}

type LeadService struct {
	txManager   repositories.TxManagerInterface
	leadRepo    repositories.LeadRepositoryInterface
	statusRepo  repositories.LeadStatusRepositoryInterface
	historyRepo repositories.LeadStatusHistoryRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	logger      *zap.Logger
}

func NewLeadService(
	txManager repositories.TxManagerInterface,
	leadRepo repositories.LeadRepositoryInterface,
	statusRepo repositories.LeadStatusRepositoryInterface,
	historyRepo repositories.LeadStatusHistoryRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) LeadServiceInterface {
	return &LeadService{
		txManager:   txManager,
		leadRepo:    leadRepo,
		statusRepo:  statusRepo,
		historyRepo: historyRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (s *LeadService) List(ctx context.Context, payload dto.LeadFilterDataDTO) (*dto.ListResult[dto.LeadDTO], error) {
	filter := types.NewPageFilter(payload.Page, payload.Limit)
	filter.Search = payload.Search
	filter.Sort = payload.Sort
	if payload.Status != "" {
		filter.Filter["lead_Status"] = payload.Status
	}
	return s.list(ctx, filter)
}

func (s *LeadService) Assigned(ctx context.Context, payload dto.AssignedListDTO) (*dto.ListResult[dto.LeadDTO], error) {
	filter := types.NewPageFilter(payload.Page, payload.Limit)
	filter.Sort = payload.Sort
	if id := payload.Filter.AssignedTo.Int(); id > 0 {
		filter.Filter["lead_Assigned_To"] = id
	}
	if id := payload.Filter.CreatedBy.Int(); id > 0 {
		filter.Filter["lead_Created_By"] = id
	}
	if payload.Filter.Status != "" {
		filter.Filter["lead_Status"] = payload.Filter.Status
	}
	return s.list(ctx, filter)
}

func (s *LeadService) list(ctx context.Context, filter types.Filter) (*dto.ListResult[dto.LeadDTO], error) {
	leads, total, err := s.leadRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Не удалось получить список лидов", zap.Error(err))
		return nil, err
	}
	items := make([]dto.LeadDTO, 0, len(leads))
	for i := range leads {
		item := leadToDTO(&leads[i])
		item.Index = filter.Offset + i + 1
		items = append(items, item)
	}
	return &dto.ListResult[dto.LeadDTO]{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *LeadService) Get(ctx context.Context, id int) (*dto.LeadDTO, error) {
	lead, err := s.leadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.historyRepo.ListByLead(ctx, id)
	if err != nil {
		return nil, err
	}

	out := leadToDTO(lead)
	out.Tracker = make([]dto.TrackerEventDTO, 0, len(history))
	for _, h := range history {
		out.Tracker = append(out.Tracker, dto.TrackerEventDTO{
			ID:        h.ID,
			OldStatus: h.OldStatusName.String,
			NewStatus: h.NewStatusName,
			ChangedBy: h.ChangedByName,
			Comment:   h.Comment,
			Remarks:   h.Remarks,
			CreatedAt: formatTime(h.CreatedAt),
		})
	}
	return &out, nil
}

// resolveStatus: пустое имя - fallback (статус по умолчанию или текущий).
func (s *LeadService) resolveStatus(ctx context.Context, name string, fallback int) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if fallback > 0 {
			return fallback, nil
		}
		name = entities.StatusPending
	}
	st, err := s.statusRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, fieldError("lead_Status", "Unknown lead status")
		}
		return 0, err
	}
	return st.ID, nil
}

func (s *LeadService) checkAssignee(ctx context.Context, userID int) error {
	if userID <= 0 {
		return nil
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fieldError("lead_Assigned_To", "Assigned user does not exist")
		}
		return err
	}
	return nil
}

func (s *LeadService) Create(ctx context.Context, form dto.LeadFormDTO) (int, error) {
	actor, err := actorID(ctx)
	if err != nil {
		return 0, err
	}
	statusID, err := s.resolveStatus(ctx, form.Status, 0)
	if err != nil {
		return 0, err
	}
	if err := s.checkAssignee(ctx, form.AssignedTo); err != nil {
		return 0, err
	}

	lead := formToLead(form)
	lead.StatusID = statusID
	lead.CreatedBy = actor

	var id int
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		id, err = s.leadRepo.CreateInTx(ctx, tx, lead)
		if err != nil {
			return err
		}
		return s.historyRepo.CreateInTx(ctx, tx, &entities.LeadStatusHistory{
			LeadID:      id,
			NewStatusID: statusID,
			ChangedBy:   actor,
			Remarks:     "Lead created",
		})
	})
	if err != nil {
		s.logger.Error("Не удалось создать лид", zap.Error(err))
		return 0, err
	}
	s.logger.Info("Лид создан", zap.Int("leadID", id), zap.Int("actorID", actor))
	return id, nil
}

func (s *LeadService) Update(ctx context.Context, id int, form dto.LeadFormDTO) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}
	if err := s.checkAssignee(ctx, form.AssignedTo); err != nil {
		return err
	}

	lead := formToLead(form)
	lead.ID = id
	lead.UpdatedBy = null.IntFrom(actor)

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		oldStatus, err := s.leadRepo.LockStatusInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		lead.StatusID, err = s.resolveStatus(ctx, form.Status, oldStatus)
		if err != nil {
			return err
		}
		if err := s.leadRepo.UpdateInTx(ctx, tx, lead); err != nil {
			return err
		}
		if lead.StatusID == oldStatus {
			return nil
		}
		return s.historyRepo.CreateInTx(ctx, tx, &entities.LeadStatusHistory{
			LeadID:      id,
			OldStatusID: null.IntFrom(oldStatus),
			NewStatusID: lead.StatusID,
			ChangedBy:   actor,
			Remarks:     "Status changed in lead form",
		})
	})
}

// ChangeStatus меняет статус и пишет запись трекера в одной транзакции.
func (s *LeadService) ChangeStatus(ctx context.Context, change dto.StatusChangeDTO) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}
	status, err := s.statusRepo.FindByID(ctx, change.StatusID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fieldError("lead_status_Id", "Unknown lead status")
		}
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		oldStatus, err := s.leadRepo.LockStatusInTx(ctx, tx, change.LeadID)
		if err != nil {
			return err
		}
		if err := s.leadRepo.UpdateStatusInTx(ctx, tx, change.LeadID, status.ID, actor); err != nil {
			return err
		}
		return s.historyRepo.CreateInTx(ctx, tx, &entities.LeadStatusHistory{
			LeadID:      change.LeadID,
			OldStatusID: null.IntFrom(oldStatus),
			NewStatusID: status.ID,
			ChangedBy:   actor,
			Comment:     change.Comment,
		})
	})
	if err != nil {
		return err
	}
	s.logger.Info("Статус лида изменён",
		zap.Int("leadID", change.LeadID),
		zap.String("status", status.Name),
		zap.Int("actorID", actor),
	)
	return nil
}

func (s *LeadService) Delete(ctx context.Context, id int) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}
	if err := s.leadRepo.Delete(ctx, id, actor); err != nil {
		return err
	}
	s.logger.Info("Лид удалён", zap.Int("leadID", id), zap.Int("actorID", actor))
	return nil
}

func (s *LeadService) Statuses(ctx context.Context) ([]dto.LeadStatusDTO, error) {
	statuses, err := s.statusRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("статусы лидов: %w", err)
	}
	out := make([]dto.LeadStatusDTO, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, dto.LeadStatusDTO{ID: st.ID, Name: st.Name})
	}
	return out, nil
}

func formToLead(form dto.LeadFormDTO) *entities.Lead {
	lead := &entities.Lead{
		Title:            strings.TrimSpace(form.Title),
		Description:      form.Description,
		Source:           form.Source,
		ContactName:      strings.TrimSpace(form.ContactName),
		ContactEmail:     strings.TrimSpace(form.ContactEmail),
		ContactPhone:     strings.TrimSpace(form.ContactPhone),
		AddressHouse:     form.AddressHouse,
		AddressStreet:    form.AddressStreet,
		AddressCity:      form.AddressCity,
		AddressPostcode:  form.AddressPostcode,
		AddressCountry:   form.AddressCountry,
		AddressLatitude:  null.NewString(form.AddressLatitude, form.AddressLatitude != ""),
		AddressLongitude: null.NewString(form.AddressLongitude, form.AddressLongitude != ""),
		Note:             form.Note,
	}
	if form.AssignedTo > 0 {
		lead.AssignedTo = null.IntFrom(form.AssignedTo)
	}
	return lead
}

func leadToDTO(l *entities.Lead) dto.LeadDTO {
	return dto.LeadDTO{
		ID:               l.ID,
		Title:            l.Title,
		Description:      l.Description,
		Source:           l.Source,
		ContactName:      l.ContactName,
		ContactEmail:     l.ContactEmail,
		ContactPhone:     l.ContactPhone,
		Status:           l.StatusName,
		AssignedTo:       l.AssignedTo.Ptr(),
		AssignedToName:   l.AssignedToName.String,
		CreatedBy:        l.CreatedBy,
		CreatedByName:    l.CreatedByName,
		UpdatedByName:    l.UpdatedByName.String,
		AddressHouse:     l.AddressHouse,
		AddressStreet:    l.AddressStreet,
		AddressCity:      l.AddressCity,
		AddressPostcode:  l.AddressPostcode,
		AddressCountry:   l.AddressCountry,
		AddressLatitude:  l.AddressLatitude.Ptr(),
		AddressLongitude: l.AddressLongitude.Ptr(),
		Note:             l.Note,
		CreatedAt:        formatTime(l.CreatedAt),
	}
}
