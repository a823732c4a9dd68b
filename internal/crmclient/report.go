package crmclient

import (
	"context"
	"encoding/json"
	"fmt"

	"crm-console/internal/console/listing"
	"crm-console/internal/console/query"
	apperrors "crm-console/pkg/errors"
)

type reportData struct {
	Agents  []AgentReport  `json:"agents"`
	Overall *ReportOverall `json:"overall"`
}

// Report - строки по агентам; Summary содержит ReportOverall.
func (c *Client) Report(ctx context.Context, q query.State) (listing.Page[AgentReport], error) {
	env, err := c.post(ctx, "/sales/report", map[string]any{"page": q.Page, "limit": q.Limit})
	if err != nil {
		return listing.Page[AgentReport]{}, err
	}

	page := listing.Page[AgentReport]{Rows: []AgentReport{}, TotalPages: env.ReportedTotalPages()}
	if isEmptyData(env.Data) {
		return page, nil
	}

	var data reportData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return listing.Page[AgentReport]{}, fmt.Errorf("%w: неверный формат отчёта: %v", apperrors.ErrTransport, err)
	}
	if data.Agents != nil {
		page.Rows = data.Agents
	}
	if data.Overall != nil {
		page.Summary = *data.Overall
	}
	return page, nil
}
