package services

import (
	"context"

	"go.uber.org/zap"

	"crm-console/internal/dto"
	"crm-console/internal/repositories"
	"crm-console/pkg/types"
)

type ReportServiceInterface interface {
	// AgentReport - страница агентов и итоги по всем лидам.
	AgentReport(ctx context.Context, req dto.ReportRequestDTO) (*dto.ReportDTO, *dto.ListResult[dto.AgentReportDTO], error)
}

type reportService struct {
	reportRepo repositories.ReportRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &reportService{reportRepo: reportRepo, logger: logger}
}

func (s *reportService) AgentReport(ctx context.Context, req dto.ReportRequestDTO) (*dto.ReportDTO, *dto.ListResult[dto.AgentReportDTO], error) {
	filter := types.NewPageFilter(req.Page, req.Limit)
	rows, total, err := s.reportRepo.AgentRows(ctx, filter)
	if err != nil {
		s.logger.Error("Не удалось построить отчёт по агентам", zap.Error(err))
		return nil, nil, err
	}
	totals, err := s.reportRepo.Totals(ctx)
	if err != nil {
		return nil, nil, err
	}

	agents := make([]dto.AgentReportDTO, 0, len(rows))
	for _, r := range rows {
		agents = append(agents, dto.AgentReportDTO{
			UserID:    r.UserID,
			UserName:  r.UserName,
			UserEmail: r.UserEmail,
			Total:     r.Total,
			Pending:   r.Pending,
			Working:   r.Working,
			Completed: r.Completed,
		})
	}
	report := &dto.ReportDTO{
		Agents: agents,
		Overall: dto.ReportOverallDTO{
			Total:     totals.Total,
			Pending:   totals.Pending,
			Working:   totals.Working,
			Completed: totals.Completed,
		},
	}
	page := &dto.ListResult[dto.AgentReportDTO]{Items: agents, Total: total, Page: filter.Page, Limit: filter.Limit}
	return report, page, nil
}
