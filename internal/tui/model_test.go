package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crm-console/internal/console/listing"
	"crm-console/internal/console/mutation"
	"crm-console/internal/console/query"
	"crm-console/internal/console/screens"
	"crm-console/internal/crmclient"
	apperrors "crm-console/pkg/errors"
)

type fakeLeadsAPI struct {
	mu       sync.Mutex
	queries  []query.State
	changes  []crmclient.StatusChange
	leads    []crmclient.Lead
	pages    int
	detailed map[int]crmclient.Lead
}

func newFakeLeadsAPI() *fakeLeadsAPI {
	leads := []crmclient.Lead{
		{ID: 7, Index: 1, Title: "Office fit-out", ContactName: "Ann", ContactEmail: "ann@acme.io", Status: "Pending"},
		{ID: 9, Index: 2, Title: "Warehouse lease", ContactName: "Bob", ContactEmail: "bob@acme.io", Status: "Working"},
	}
	return &fakeLeadsAPI{
		leads: leads,
		pages: 3,
		detailed: map[int]crmclient.Lead{
			7: {ID: 7, Title: "Office fit-out", Status: "Pending", Tracker: []crmclient.TrackerEvent{
				{ID: 1, OldStatus: "Pending", NewStatus: "Pending", ChangedBy: "Admin", Comment: "Lead created"},
			}},
		},
	}
}

func (f *fakeLeadsAPI) lastQuery() query.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

func (f *fakeLeadsAPI) ListLeads(_ context.Context, q query.State) (listing.Page[crmclient.Lead], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return listing.Page[crmclient.Lead]{Rows: f.leads, TotalPages: f.pages}, nil
}

func (f *fakeLeadsAPI) GetLead(_ context.Context, id int) (crmclient.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.detailed[id]
	if !ok {
		return crmclient.Lead{}, apperrors.ErrNotFound
	}
	return l, nil
}

func (f *fakeLeadsAPI) CreateLead(context.Context, crmclient.LeadForm) (string, error) {
	return "", nil
}

func (f *fakeLeadsAPI) UpdateLead(context.Context, int, crmclient.LeadForm) (string, error) {
	return "", nil
}

func (f *fakeLeadsAPI) DeleteLead(context.Context, int) (string, error) { return "", nil }

func (f *fakeLeadsAPI) ChangeLeadStatus(_ context.Context, change crmclient.StatusChange) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changes = append(f.changes, change)
	return "Lead status updated", nil
}

func (f *fakeLeadsAPI) LeadStatuses(context.Context) ([]crmclient.LeadStatus, error) {
	return []crmclient.LeadStatus{{ID: 1, Name: "Pending"}, {ID: 2, Name: "Working"}, {ID: 3, Name: "Completed"}}, nil
}

type fakeAuth struct {
	result    crmclient.LoginResult
	err       error
	emails    []string
	pwdTokens []string
}

func (a *fakeAuth) Login(_ context.Context, email, _ string) (crmclient.LoginResult, error) {
	a.emails = append(a.emails, email)
	return a.result, a.err
}

func (a *fakeAuth) ChangePassword(_ context.Context, token, _, _, _ string) (string, error) {
	a.pwdTokens = append(a.pwdTokens, token)
	return "Password changed", nil
}

func newTestModel(auth *fakeAuth, api *fakeLeadsAPI) Model {
	factory := func(ctx context.Context, _ string) (LeadBoard, error) {
		board := screens.NewLeads(api, mutation.NewProtocol(nil, zap.NewNop()), nil, zap.NewNop())
		board.Mount(ctx)
		return board, nil
	}
	return New(auth, factory)
}

// collect выполняет команду и раскрывает пакеты; тики спиннера отбрасываются.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	case nil:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for _, out := range collect(cmd) {
		if _, quit := out.(tea.QuitMsg); quit {
			continue
		}
		m = send(t, m, out)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	return send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m = send(t, m, msg)
	}
	return m
}

func signIn(t *testing.T, m Model) Model {
	t.Helper()
	m = typeText(t, m, "admin@example.com")
	m = press(t, m, "tab")
	m = typeText(t, m, "secret")
	return press(t, m, "enter")
}

func TestLogin_OpensLeadBoard(t *testing.T) {
	auth := &fakeAuth{result: crmclient.LoginResult{Token: "tok"}}
	api := newFakeLeadsAPI()

	m := signIn(t, newTestModel(auth, api))

	require.Equal(t, phaseLeads, m.phase)
	assert.Equal(t, []string{"admin@example.com"}, auth.emails)
	assert.Equal(t, []int{7, 9}, m.rowIDs)
	assert.Len(t, m.statuses, 3)
	assert.False(t, m.busy())
	assert.Contains(t, m.View(), "Office fit-out")
	assert.Contains(t, m.View(), "Page 1 of 3")
}

func TestLogin_ErrorStaysOnForm(t *testing.T) {
	auth := &fakeAuth{err: apperrors.NewApplicationError("Invalid email or password", nil)}

	m := signIn(t, newTestModel(auth, newFakeLeadsAPI()))

	assert.Equal(t, phaseLogin, m.phase)
	assert.Equal(t, "Invalid email or password", m.err)
	assert.Nil(t, m.board)
}

func TestLogin_EmptyFieldsAreNotSent(t *testing.T) {
	auth := &fakeAuth{}
	m := press(t, newTestModel(auth, newFakeLeadsAPI()), "enter")

	assert.Empty(t, auth.emails)
	assert.Equal(t, "Email and password are required", m.err)
}

func TestLogin_ForcedPasswordChange(t *testing.T) {
	auth := &fakeAuth{result: crmclient.LoginResult{Token: "tok", MustChangePassword: true}}

	m := signIn(t, newTestModel(auth, newFakeLeadsAPI()))
	require.Equal(t, phaseChangePassword, m.phase)

	m = typeText(t, m, "old")
	m = press(t, m, "tab")
	m = typeText(t, m, "N3w#Password")
	m = press(t, m, "tab")
	m = typeText(t, m, "N3w#Password")
	m = press(t, m, "enter")

	assert.Equal(t, []string{"tok"}, auth.pwdTokens)
	assert.Equal(t, phaseLogin, m.phase)
	assert.Empty(t, m.token)
	assert.True(t, strings.HasPrefix(m.toast, "Password changed"))
}

func TestLeads_PagingSearchSortAndFilter(t *testing.T) {
	api := newFakeLeadsAPI()
	m := signIn(t, newTestModel(&fakeAuth{result: crmclient.LoginResult{Token: "tok"}}, api))

	m = press(t, m, "]")
	assert.Equal(t, 2, api.lastQuery().Page)

	m = press(t, m, "[")
	assert.Equal(t, 1, api.lastQuery().Page)

	m = press(t, m, "/")
	require.Equal(t, phaseSearch, m.phase)
	m = typeText(t, m, "acme")
	m = press(t, m, "enter")
	assert.Equal(t, phaseLeads, m.phase)
	assert.Equal(t, "acme", api.lastQuery().Search)
	assert.Equal(t, 1, api.lastQuery().Page)

	m = press(t, m, "l", "s")
	assert.Equal(t, []query.SortField{{Field: "lead_Title", Order: query.Asc}}, api.lastQuery().Sort)
	m = press(t, m, "s")
	assert.Equal(t, query.Desc, api.lastQuery().Sort[0].Order)
	assert.Contains(t, m.View(), "Title ▼")

	m = press(t, m, "f")
	assert.Equal(t, "Pending", api.lastQuery().StatusFilter)
	m = press(t, m, "f")
	assert.Equal(t, "Working", api.lastQuery().StatusFilter)

	m = press(t, m, "x")
	last := api.lastQuery()
	assert.Empty(t, last.Search)
	assert.Empty(t, last.StatusFilter)
	assert.Empty(t, last.Sort)
	assert.Equal(t, 0, m.filter)
}

func TestLeads_LastPageDoesNotAdvance(t *testing.T) {
	api := newFakeLeadsAPI()
	api.pages = 1
	m := signIn(t, newTestModel(&fakeAuth{result: crmclient.LoginResult{Token: "tok"}}, api))
	before := len(api.queries)

	press(t, m, "]")

	assert.Len(t, api.queries, before)
}

func TestDetail_ChangeStatusWithComment(t *testing.T) {
	api := newFakeLeadsAPI()
	m := signIn(t, newTestModel(&fakeAuth{result: crmclient.LoginResult{Token: "tok"}}, api))

	m = press(t, m, "enter")
	require.Equal(t, phaseDetail, m.phase)
	assert.Contains(t, m.View(), "Lead created")

	m = press(t, m, "c")
	require.Equal(t, phaseStatus, m.phase)
	assert.Equal(t, 0, m.statusCursor)

	m = press(t, m, "down")
	m = typeText(t, m, "called back")
	m = press(t, m, "enter")

	require.Len(t, api.changes, 1)
	assert.Equal(t, crmclient.StatusChange{LeadID: 7, Status: "Working", StatusID: 2, Comment: "called back"}, api.changes[0])
	assert.Equal(t, phaseDetail, m.phase)
	assert.Equal(t, "Lead status updated", m.toast)
}

func TestDetail_CommentTooLongIsRejectedLocally(t *testing.T) {
	api := newFakeLeadsAPI()
	m := signIn(t, newTestModel(&fakeAuth{result: crmclient.LoginResult{Token: "tok"}}, api))

	m = press(t, m, "enter", "c")
	m = typeText(t, m, strings.Repeat("a", 501))
	m = press(t, m, "enter")

	assert.Empty(t, api.changes)
	assert.Equal(t, phaseStatus, m.phase)
	assert.Contains(t, m.fieldErrors, "comment")
}

func TestDetail_NotFound(t *testing.T) {
	api := newFakeLeadsAPI()
	m := signIn(t, newTestModel(&fakeAuth{result: crmclient.LoginResult{Token: "tok"}}, api))

	m = press(t, m, "down", "enter")

	assert.Equal(t, phaseDetail, m.phase)
	assert.Contains(t, m.View(), "Lead not found")

	m = press(t, m, "c")
	assert.Equal(t, phaseDetail, m.phase)

	m = press(t, m, "esc")
	assert.Equal(t, phaseLeads, m.phase)
}

// Медленный список не мешает открыть и закрыть деталь.
func TestDetail_OpensWhileListIsLoading(t *testing.T) {
	api := newFakeLeadsAPI()
	m := signIn(t, newTestModel(&fakeAuth{result: crmclient.LoginResult{Token: "tok"}}, api))

	next, pageCmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	m = next.(Model)
	require.NotNil(t, pageCmd)
	require.True(t, m.loading(regionList))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	m = next.(Model)
	assert.Nil(t, cmd, "вторая списочная операция ждёт первую")

	m = press(t, m, "enter")
	require.Equal(t, phaseDetail, m.phase)
	assert.Contains(t, m.View(), "Lead created")
	assert.False(t, m.loading(regionDetail))

	m = press(t, m, "esc")
	assert.Equal(t, phaseLeads, m.phase)

	for _, msg := range collect(pageCmd) {
		m = send(t, m, msg)
	}
	assert.False(t, m.busy())
	assert.Equal(t, 2, api.lastQuery().Page)
}

func TestNotifier_ToastsReachModel(t *testing.T) {
	n := NewNotifier()
	m := New(&fakeAuth{}, nil, WithEvents(n.Events()))

	n.Failure(context.Background(), "Failed to update lead")
	msgs := collect(m.Init())
	require.Len(t, msgs, 1)
	// send здесь не подходит: следующая подписка ждёт канал бесконечно
	next, cmd := m.Update(msgs[0])
	m = next.(Model)
	assert.NotNil(t, cmd)

	assert.Equal(t, "Failed to update lead", m.toast)
	assert.Contains(t, m.View(), "Failed to update lead")
}
