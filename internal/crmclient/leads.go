package crmclient

import (
	"context"

	"crm-console/internal/console/listing"
	"crm-console/internal/console/query"
)

type leadFilterData struct {
	Search string            `json:"search"`
	Sort   []query.SortField `json:"sort"`
	Page   int               `json:"page"`
	Limit  int               `json:"limit"`
	Status string            `json:"lead_Status"`
}

func sortOf(q query.State) []query.SortField {
	if q.Sort == nil {
		return []query.SortField{}
	}
	return q.Sort
}

func (c *Client) ListLeads(ctx context.Context, q query.State) (listing.Page[Lead], error) {
	env, err := c.post(ctx, "/sales/lead-list", map[string]any{
		"filterData": leadFilterData{
			Search: q.Search,
			Sort:   sortOf(q),
			Page:   q.Page,
			Limit:  q.Limit,
			Status: q.StatusFilter,
		},
	})
	if err != nil {
		return listing.Page[Lead]{}, err
	}
	rows, err := decodeList[Lead](env)
	if err != nil {
		return listing.Page[Lead]{}, err
	}
	return listing.Page[Lead]{Rows: rows, TotalPages: env.ReportedTotalPages()}, nil
}

// GetLead отдаёт лид вместе с историей статусов.
func (c *Client) GetLead(ctx context.Context, id int) (Lead, error) {
	env, err := c.post(ctx, "/sales/sales-lead/id", map[string]any{"lead_Id": id})
	if err != nil {
		return Lead{}, err
	}
	return decodeOne[Lead](env)
}

func (c *Client) CreateLead(ctx context.Context, form LeadForm) (string, error) {
	return c.mutate(ctx, "/sales/create-lead", map[string]any{"formData": form})
}

func (c *Client) UpdateLead(ctx context.Context, id int, form LeadForm) (string, error) {
	return c.mutate(ctx, "/sales/update", struct {
		LeadID int `json:"lead_Id"`
		LeadForm
	}{LeadID: id, LeadForm: form})
}

func (c *Client) DeleteLead(ctx context.Context, id int) (string, error) {
	return c.mutate(ctx, "/sales/delete", map[string]any{"lead_Id": id})
}

func (c *Client) ChangeLeadStatus(ctx context.Context, change StatusChange) (string, error) {
	return c.mutate(ctx, "/sales/update", change)
}

func (c *Client) LeadStatuses(ctx context.Context) ([]LeadStatus, error) {
	env, err := c.post(ctx, "/sales/lead-status-list", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[LeadStatus](env)
}

const (
	FilterAssignedTo = "lead_Assigned_To"
	FilterCreatedBy  = "lead_Created_By"
)

func (c *Client) ListAssignedLeads(ctx context.Context, q query.State) (listing.Page[AssignedLead], error) {
	filter := map[string]any{"lead_Status": q.StatusFilter}
	for _, key := range []string{FilterAssignedTo, FilterCreatedBy} {
		if v, ok := q.Filters[key]; ok {
			filter[key] = v
		} else {
			filter[key] = ""
		}
	}
	env, err := c.post(ctx, "/sales/admin/assigned-list", map[string]any{
		"page":   q.Page,
		"limit":  q.Limit,
		"filter": filter,
		"sort":   sortOf(q),
	})
	if err != nil {
		return listing.Page[AssignedLead]{}, err
	}
	rows, err := decodeList[AssignedLead](env)
	if err != nil {
		return listing.Page[AssignedLead]{}, err
	}
	return listing.Page[AssignedLead]{Rows: rows, TotalPages: env.ReportedTotalPages()}, nil
}
