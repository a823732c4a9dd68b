package screens

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crm-console/internal/crmclient"
	apperrors "crm-console/pkg/errors"
)

func TestWorkspace_MountFetchesOnce(t *testing.T) {
	ctx := context.Background()
	crm := newFakeCRM()
	n := &recordingNotifier{}
	w := NewWorkspace("s-1", crm, n, zap.NewNop())

	for _, name := range Names {
		v, err := w.Mount(ctx, name)
		require.NoError(t, err, name)
		assert.Equal(t, name, v.Screen)
	}
	for _, name := range Names {
		assert.Len(t, crm.queries(name), 1, name)
	}

	_, err := w.Mount(ctx, NameLeads)
	require.NoError(t, err)
	assert.Len(t, crm.queries(NameLeads), 1, "повторный Mount не перезапрашивает")

	w.Unmount(NameLeads)
	_, err = w.Mount(ctx, NameLeads)
	require.NoError(t, err)
	assert.Len(t, crm.queries(NameLeads), 2)

	assert.Contains(t, n.updates, "leads/list")
}

func TestWorkspace_UnknownScreen(t *testing.T) {
	w := NewWorkspace("s-1", newFakeCRM(), nil, zap.NewNop())
	_, err := w.Mount(context.Background(), "customers")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWorkspace_UnmountForgetsQuery(t *testing.T) {
	ctx := context.Background()
	w := NewWorkspace("s-1", newFakeCRM(), nil, zap.NewNop())

	leads, err := w.Leads(ctx)
	require.NoError(t, err)
	leads.Search(ctx, "acme")

	w.Unmount(NameLeads)
	leads, err = w.Leads(ctx)
	require.NoError(t, err)
	assert.Empty(t, leads.Query().Search)
}

func TestWorkspace_TypedScreens(t *testing.T) {
	ctx := context.Background()
	crm := newFakeCRM()
	w := NewWorkspace("s-1", crm, nil, zap.NewNop())

	assigned, err := w.Assigned(ctx)
	require.NoError(t, err)
	v, err := assigned.Filter(ctx, crmclient.FilterAssignedTo, 4)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{crmclient.FilterAssignedTo: 4}, v.Query.Filters)

	opts, err := assigned.Options(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, crmclient.RoleBoth, opts[0].Role)

	report, err := w.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, crmclient.ReportOverall{Total: 2, Completed: 2}, report.Overall())
	data, name, err := report.Export()
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "agent-report-page-1.xlsx", name)

	users, err := w.Users(ctx)
	require.NoError(t, err)
	res, pwd := users.ResetPassword(ctx, 3)
	assert.True(t, res.OK)
	assert.Equal(t, "Tmp#Pass12345", pwd)
	roles, err := users.RoleOptions(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	r, err := w.Roles(ctx)
	require.NoError(t, err)
	v = r.OpenDetail(ctx, 2)
	assert.NotNil(t, v.Detail)
	assert.True(t, r.AddPermission(ctx, 4).OK)
	assert.True(t, r.RemovePermission(ctx, 4).OK)
	r.CloseDetail()
	assert.False(t, r.AddPermission(ctx, 4).OK, "без открытой роли")

	perms, err := w.Permissions(ctx)
	require.NoError(t, err)
	perms.Form().OpenEdit(4)
	assert.True(t, perms.Update(ctx, 4, crmclient.PermissionForm{Name: "Leads", RoutePath: "/sales/lead-list"}).OK)
	assert.False(t, perms.Form().Snapshot().Open)
}

func TestManager_ForAndDrop(t *testing.T) {
	crm := newFakeCRM()
	var creds []crmclient.Credential
	m := NewManager(func(cred crmclient.Credential) API {
		creds = append(creds, cred)
		return crm
	}, nil, zap.NewNop())

	w1 := m.For("a", crmclient.StaticToken("t-a"))
	assert.Same(t, w1, m.For("a", crmclient.StaticToken("t-a")))
	require.Len(t, creds, 1)
	assert.Equal(t, "t-a", creds[0].BearerToken())

	m.Drop("a")
	assert.NotSame(t, w1, m.For("a", crmclient.StaticToken("t-a")))
}

func TestWorkspace_ApplyOnUnmountedScreenFetchesOnce(t *testing.T) {
	ctx := context.Background()
	crm := newFakeCRM()
	w := NewWorkspace("s-1", crm, nil, zap.NewNop())

	v, err := w.Apply(ctx, NameLeads, func(s Screen) (View, error) { return s.Search(ctx, "acme"), nil })
	require.NoError(t, err)
	assert.Equal(t, "acme", v.Query.Search)

	queries := crm.queries(NameLeads)
	require.Len(t, queries, 1, "операция и есть первый запрос")
	assert.Equal(t, "acme", queries[0].Search)

	v, err = w.Mount(ctx, NameLeads)
	require.NoError(t, err)
	assert.Equal(t, "acme", v.Query.Search)
	assert.Len(t, crm.queries(NameLeads), 1)
}

func TestWorkspace_ApplyFailureOnFreshScreenLeavesItUnmounted(t *testing.T) {
	ctx := context.Background()
	crm := newFakeCRM()
	w := NewWorkspace("s-1", crm, nil, zap.NewNop())

	_, err := w.Apply(ctx, NameLeads, func(s Screen) (View, error) { return s.Filter(ctx, "nope", 1) })
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.Empty(t, crm.queries(NameLeads))

	_, err = w.Mount(ctx, NameLeads)
	require.NoError(t, err)
	assert.Len(t, crm.queries(NameLeads), 1, "Mount выполняет первый запрос")
}

type expiringToken struct {
	crmclient.StaticToken
	at time.Time
}

func (e expiringToken) Expiry() time.Time { return e.at }

func TestManager_SweepDropsExpiredWorkspaces(t *testing.T) {
	crm := newFakeCRM()
	m := NewManager(func(crmclient.Credential) API { return crm }, nil, zap.NewNop())
	var dropped []string
	m.OnDrop(func(id string) { dropped = append(dropped, id) })

	now := time.Now()
	m.For("old", expiringToken{StaticToken: "t-old", at: now.Add(-time.Minute)})
	m.For("live", expiringToken{StaticToken: "t-live", at: now.Add(time.Hour)})
	m.For("plain", crmclient.StaticToken("t"))
	require.Equal(t, 3, m.Len())

	assert.Equal(t, 1, m.Sweep(now))
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"old"}, dropped)

	assert.Equal(t, 1, m.Sweep(now.Add(2*time.Hour)))
	assert.Equal(t, []string{"old", "live"}, dropped)
	assert.Equal(t, 1, m.Len(), "без срока жизни не закрывается по таймеру")
}
