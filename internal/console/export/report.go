// Package export renders console data as spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"crm-console/internal/crmclient"
)

const (
	ReportSheet       = "Report"
	ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var reportHeaders = []interface{}{"Agent", "Email", "Total", "Pending", "Working", "Completed"}

// WriteReport пишет xlsx: строка заголовков, строки агентов и итоговая строка.
func WriteReport(w io.Writer, rows []crmclient.AgentReport, overall crmclient.ReportOverall) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return fmt.Errorf("ошибка создания листа: %w", err)
	}
	if err := f.SetSheetRow(ReportSheet, "A1", &reportHeaders); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ReportSheet, "A1", "F1", bold); err != nil {
		return err
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{r.UserName, r.UserEmail, r.Total, r.Pending, r.Working, r.Completed}
		if err := f.SetSheetRow(ReportSheet, cell, &row); err != nil {
			return err
		}
	}

	totalRow := len(rows) + 2
	cell, _ := excelize.CoordinatesToCellName(1, totalRow)
	total := []interface{}{"Overall", "", overall.Total, overall.Pending, overall.Working, overall.Completed}
	if err := f.SetSheetRow(ReportSheet, cell, &total); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(6, totalRow)
	if err := f.SetCellStyle(ReportSheet, cell, last, bold); err != nil {
		return err
	}
	_ = f.SetColWidth(ReportSheet, "A", "B", 28)

	return f.Write(w)
}

func ReportBytes(rows []crmclient.AgentReport, overall crmclient.ReportOverall) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, rows, overall); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ReportFileName(page int) string {
	return fmt.Sprintf("agent-report-page-%d.xlsx", page)
}
