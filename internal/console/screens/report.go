package screens

import (
	"context"

	"go.uber.org/zap"

	"crm-console/internal/console/export"
	"crm-console/internal/console/listing"
	"crm-console/internal/console/query"
	"crm-console/internal/crmclient"
)

type ReportAPI interface {
	Report(ctx context.Context, q query.State) (listing.Page[crmclient.AgentReport], error)
}

// Report - отчёт по агентам; итоговая строка приходит в Summary результата.
type Report struct {
	*List[crmclient.AgentReport]
}

func NewReport(api ReportAPI, changed ChangeFunc, logger *zap.Logger) *Report {
	return &Report{List: newList(NameReport, api.Report, changed, logger)}
}

func (s *Report) Overall() crmclient.ReportOverall {
	overall, _ := s.Result().Summary.(crmclient.ReportOverall)
	return overall
}

// Export выгружает текущую страницу отчёта в xlsx.
func (s *Report) Export() ([]byte, string, error) {
	res := s.Result()
	data, err := export.ReportBytes(res.Rows, s.Overall())
	if err != nil {
		return nil, "", err
	}
	return data, export.ReportFileName(res.Page), nil
}
