package screens

import (
	"context"
	"sync"

	"crm-console/internal/console/listing"
	"crm-console/internal/console/query"
	"crm-console/internal/crmclient"
	apperrors "crm-console/pkg/errors"
	"crm-console/pkg/types"
)

// fakeCRM - CRM в памяти, реализует API целиком.
type fakeCRM struct {
	mu sync.Mutex

	leads    map[int]crmclient.Lead
	statuses []crmclient.LeadStatus

	listQueries   map[string][]query.State
	statusChanges []crmclient.StatusChange

	listErr   error
	mutateErr error
}

func newFakeCRM() *fakeCRM {
	return &fakeCRM{
		leads: map[int]crmclient.Lead{
			7: {
				ID: 7, Title: "Acme", Status: "Pending",
				Tracker: []crmclient.TrackerEvent{{ID: 1, NewStatus: "Pending", ChangedBy: "Admin"}},
			},
		},
		statuses: []crmclient.LeadStatus{
			{ID: 1, Name: "Pending"}, {ID: 2, Name: "Working"}, {ID: 3, Name: "Completed"},
		},
		listQueries: map[string][]query.State{},
	}
}

func (f *fakeCRM) record(list string, q query.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listQueries[list] = append(f.listQueries[list], q)
	return f.listErr
}

func (f *fakeCRM) queries(list string) []query.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]query.State(nil), f.listQueries[list]...)
}

func (f *fakeCRM) ListLeads(_ context.Context, q query.State) (listing.Page[crmclient.Lead], error) {
	if err := f.record(NameLeads, q); err != nil {
		return listing.Page[crmclient.Lead]{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := make([]crmclient.Lead, 0, len(f.leads))
	for _, l := range f.leads {
		l.Tracker = nil
		rows = append(rows, l)
	}
	return listing.Page[crmclient.Lead]{Rows: rows, TotalPages: 3}, nil
}

func (f *fakeCRM) GetLead(_ context.Context, id int) (crmclient.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.leads[id]
	if !ok {
		return crmclient.Lead{}, apperrors.ErrNotFound
	}
	l.Tracker = append([]crmclient.TrackerEvent(nil), l.Tracker...)
	return l, nil
}

func (f *fakeCRM) CreateLead(_ context.Context, form crmclient.LeadForm) (string, error) {
	if f.mutateErr != nil {
		return "", f.mutateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := len(f.leads) + 100
	f.leads[id] = crmclient.Lead{ID: types.LooseInt(id), Title: form.Title, Status: "Pending"}
	return "Lead created", nil
}

func (f *fakeCRM) UpdateLead(_ context.Context, id int, form crmclient.LeadForm) (string, error) {
	if f.mutateErr != nil {
		return "", f.mutateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	l := f.leads[id]
	l.Title = form.Title
	f.leads[id] = l
	return "", nil
}

func (f *fakeCRM) DeleteLead(_ context.Context, id int) (string, error) {
	if f.mutateErr != nil {
		return "", f.mutateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.leads, id)
	return "Lead deleted", nil
}

func (f *fakeCRM) ChangeLeadStatus(_ context.Context, change crmclient.StatusChange) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusChanges = append(f.statusChanges, change)
	if f.mutateErr != nil {
		return "", f.mutateErr
	}
	l := f.leads[change.LeadID]
	l.Tracker = append(l.Tracker, crmclient.TrackerEvent{
		ID:        types.LooseInt(len(l.Tracker) + 1),
		OldStatus: l.Status,
		NewStatus: change.Status,
		Comment:   change.Comment,
		ChangedBy: "Admin",
	})
	l.Status = change.Status
	f.leads[change.LeadID] = l
	return "Lead status updated", nil
}

func (f *fakeCRM) LeadStatuses(context.Context) ([]crmclient.LeadStatus, error) {
	return f.statuses, nil
}

func (f *fakeCRM) ListUsers(_ context.Context, q query.State) (listing.Page[crmclient.User], error) {
	return listing.Page[crmclient.User]{Rows: []crmclient.User{{ID: 1, Name: "Admin"}}}, f.record(NameUsers, q)
}

func (f *fakeCRM) GetUser(_ context.Context, id int) (crmclient.User, error) {
	return crmclient.User{ID: types.LooseInt(id), Name: "Admin"}, nil
}

func (f *fakeCRM) CreateUser(context.Context, crmclient.UserForm) (string, error) {
	return "", f.mutateErr
}

func (f *fakeCRM) UpdateUser(context.Context, int, crmclient.UserForm) (string, error) {
	return "", f.mutateErr
}

func (f *fakeCRM) DeleteUser(context.Context, int) (string, error) { return "", f.mutateErr }

func (f *fakeCRM) SetDefaultPassword(context.Context, int) (string, string, error) {
	if f.mutateErr != nil {
		return "", "", f.mutateErr
	}
	return "Tmp#Pass12345", "Password reset", nil
}

func (f *fakeCRM) ListRoles(_ context.Context, q query.State) (listing.Page[crmclient.Role], error) {
	return listing.Page[crmclient.Role]{Rows: []crmclient.Role{{ID: 1, Name: "Admin"}, {ID: 2, Name: "Agent"}}}, f.record(NameRoles, q)
}

func (f *fakeCRM) GetRole(_ context.Context, id int) (crmclient.Role, error) {
	return crmclient.Role{ID: types.LooseInt(id), Name: "Agent"}, nil
}

func (f *fakeCRM) CreateRole(context.Context, string) (string, error)      { return "", f.mutateErr }
func (f *fakeCRM) UpdateRole(context.Context, int, string) (string, error) { return "", f.mutateErr }
func (f *fakeCRM) DeleteRole(context.Context, int) (string, error)         { return "", f.mutateErr }

func (f *fakeCRM) RolePermissions(_ context.Context, roleID int) ([]crmclient.RolePermission, error) {
	return []crmclient.RolePermission{{RoleID: types.LooseInt(roleID), PermissionID: 4}}, nil
}

func (f *fakeCRM) AddRolePermission(context.Context, int, int) (string, error) {
	return "", f.mutateErr
}

func (f *fakeCRM) RemoveRolePermission(context.Context, int, int) (string, error) {
	return "", f.mutateErr
}

func (f *fakeCRM) ListPermissions(_ context.Context, q query.State) (listing.Page[crmclient.Permission], error) {
	return listing.Page[crmclient.Permission]{Rows: []crmclient.Permission{{ID: 4, Name: "Leads"}}}, f.record(NamePermissions, q)
}

func (f *fakeCRM) GetPermission(_ context.Context, id int) (crmclient.Permission, error) {
	return crmclient.Permission{ID: types.LooseInt(id)}, nil
}

func (f *fakeCRM) CreatePermission(context.Context, crmclient.PermissionForm) (string, error) {
	return "", f.mutateErr
}

func (f *fakeCRM) UpdatePermission(context.Context, int, crmclient.PermissionForm) (string, error) {
	return "", f.mutateErr
}

func (f *fakeCRM) DeletePermission(context.Context, int) (string, error) { return "", f.mutateErr }

func (f *fakeCRM) ListAssignedLeads(_ context.Context, q query.State) (listing.Page[crmclient.AssignedLead], error) {
	return listing.Page[crmclient.AssignedLead]{}, f.record(NameAssigned, q)
}

func (f *fakeCRM) AgentOptions(_ context.Context, role string) ([]crmclient.AgentOption, error) {
	return []crmclient.AgentOption{{ID: 4, Name: "Ann", Role: role}}, nil
}

func (f *fakeCRM) Report(_ context.Context, q query.State) (listing.Page[crmclient.AgentReport], error) {
	if err := f.record(NameReport, q); err != nil {
		return listing.Page[crmclient.AgentReport]{}, err
	}
	return listing.Page[crmclient.AgentReport]{
		Rows:       []crmclient.AgentReport{{UserName: "Ann", Total: 2, Completed: 2}},
		TotalPages: 1,
		Summary:    crmclient.ReportOverall{Total: 2, Completed: 2},
	}, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
	updates   []string
}

func (n *recordingNotifier) Success(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Failure(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

func (n *recordingNotifier) ScreenUpdated(_ context.Context, screen, part string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates = append(n.updates, screen+"/"+part)
}
