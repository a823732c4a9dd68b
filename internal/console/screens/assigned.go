package screens

import (
	"context"

	"go.uber.org/zap"

	"crm-console/internal/console/listing"
	"crm-console/internal/console/query"
	"crm-console/internal/crmclient"
)

type AssignedAPI interface {
	ListAssignedLeads(ctx context.Context, q query.State) (listing.Page[crmclient.AssignedLead], error)
	AgentOptions(ctx context.Context, role string) ([]crmclient.AgentOption, error)
}

// Assigned - лиды с назначением, фильтруются по исполнителю и автору.
type Assigned struct {
	*List[crmclient.AssignedLead]
	api AssignedAPI
}

func NewAssigned(api AssignedAPI, changed ChangeFunc, logger *zap.Logger) *Assigned {
	return &Assigned{
		List: newList(NameAssigned, api.ListAssignedLeads, changed, logger,
			crmclient.FilterAssignedTo, crmclient.FilterCreatedBy),
		api: api,
	}
}

// Options - пользователи для фильтров: role "Agent", "Admin" или "Both".
func (s *Assigned) Options(ctx context.Context, role string) ([]crmclient.AgentOption, error) {
	switch role {
	case crmclient.RoleAgent, crmclient.RoleAdmin, crmclient.RoleBoth:
	default:
		role = crmclient.RoleBoth
	}
	return s.api.AgentOptions(ctx, role)
}
