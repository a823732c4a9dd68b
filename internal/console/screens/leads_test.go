package screens

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crm-console/internal/console/detail"
	"crm-console/internal/console/listing"
	"crm-console/internal/console/mutation"
	"crm-console/internal/console/query"
	"crm-console/internal/crmclient"
	apperrors "crm-console/pkg/errors"
)

func newLeadsScreen(t *testing.T) (*Leads, *fakeCRM, *recordingNotifier) {
	t.Helper()
	crm := newFakeCRM()
	n := &recordingNotifier{}
	s := NewLeads(crm, mutation.NewProtocol(n, zap.NewNop()), n.ScreenUpdatedFunc(), zap.NewNop())
	return s, crm, n
}

func (n *recordingNotifier) ScreenUpdatedFunc() ChangeFunc {
	return func(screen, part string) { n.ScreenUpdated(context.Background(), screen, part) }
}

func TestLeads_StatusChangeReloadsDetailAndRefreshesListOnce(t *testing.T) {
	ctx := context.Background()
	s, crm, n := newLeadsScreen(t)

	s.Mount(ctx)
	s.Search(ctx, "acme")
	before := len(crm.queries(NameLeads))

	s.OpenDetail(ctx, 7)
	require.Equal(t, detail.PhaseReady, s.Detail().Phase)
	require.Len(t, s.Detail().Record.Tracker, 1)

	require.NoError(t, s.SetStatusDraft("Completed", "done"))
	res := s.ChangeStatus(ctx)

	require.True(t, res.OK, res.Message)
	assert.Equal(t, "Lead status updated", res.Message)

	require.Len(t, crm.statusChanges, 1)
	assert.Equal(t, crmclient.StatusChange{LeadID: 7, Status: "Completed", StatusID: 3, Comment: "done"}, crm.statusChanges[0])

	snap := s.Detail()
	assert.Equal(t, detail.PhaseReady, snap.Phase)
	assert.Equal(t, "Completed", snap.Record.Status)
	require.Len(t, snap.Record.Tracker, 2)
	assert.Equal(t, crmclient.TrackerEvent{ID: 2, OldStatus: "Pending", NewStatus: "Completed", Comment: "done", ChangedBy: "Admin"}, snap.Record.Tracker[1])
	assert.Equal(t, detail.Draft{}, snap.Draft, "черновик сбрасывается")
	assert.Equal(t, 7, s.detail.CurrentID(), "деталь остаётся открытой")

	queries := crm.queries(NameLeads)
	require.Len(t, queries, before+1, "ровно одно обновление списка")
	assert.Equal(t, "acme", queries[len(queries)-1].Search)

	assert.Equal(t, []string{"Lead status updated"}, n.successes)
	assert.Empty(t, n.failures)
}

func TestLeads_StatusChangeFailureKeepsStateAndDraft(t *testing.T) {
	ctx := context.Background()
	s, crm, n := newLeadsScreen(t)
	s.Mount(ctx)
	s.Page(ctx, 2)
	s.OpenDetail(ctx, 7)
	require.NoError(t, s.SetStatusDraft("Working", "call back"))

	queryBefore := s.Query()
	resultBefore := s.Result()
	listCalls := len(crm.queries(NameLeads))

	crm.mutateErr = apperrors.NewApplicationError("Validation failed", map[string][]string{
		"comment": {"The comment may not be greater than 255 characters.", "second"},
	})
	res := s.ChangeStatus(ctx)

	assert.False(t, res.OK)
	assert.Equal(t, "Validation failed", res.Message)
	assert.Equal(t, map[string]string{"comment": "The comment may not be greater than 255 characters."}, res.FieldErrors)

	assert.Len(t, crm.queries(NameLeads), listCalls, "список не обновляется")
	if diff := cmp.Diff(queryBefore, s.Query()); diff != "" {
		t.Errorf("Query State изменился (-было +стало):\n%s", diff)
	}
	assert.Equal(t, resultBefore, s.Result())

	view := s.View().Detail.(LeadDetailView)
	assert.Equal(t, res.FieldErrors, view.StatusErrors)
	assert.Equal(t, detail.Draft{Status: "Working", Comment: "call back"}, view.Draft)
	assert.Equal(t, []string{"Validation failed"}, n.failures)
}

func TestLeads_StatusMustBeOneOfServerStatuses(t *testing.T) {
	ctx := context.Background()
	s, crm, _ := newLeadsScreen(t)
	s.OpenDetail(ctx, 7)
	require.NoError(t, s.SetStatusDraft("Archived", ""))

	res := s.ChangeStatus(ctx)
	assert.False(t, res.OK)
	assert.Contains(t, res.FieldErrors, "status")
	assert.Empty(t, crm.statusChanges)
}

func TestLeads_StatusChangeWithoutOpenLead(t *testing.T) {
	s, crm, _ := newLeadsScreen(t)
	res := s.ChangeStatus(context.Background())
	assert.False(t, res.OK)
	assert.Empty(t, crm.statusChanges)
}

func TestLeads_CommentTooLong(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newLeadsScreen(t)
	s.OpenDetail(ctx, 7)

	long := make([]rune, detail.MaxCommentLength+1)
	for i := range long {
		long[i] = 'ж'
	}
	err := s.SetStatusDraft("Completed", string(long))
	var appErr *apperrors.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "comment")
}

func TestLeads_CreateFailureLeavesFormOpenWithErrors(t *testing.T) {
	ctx := context.Background()
	s, crm, _ := newLeadsScreen(t)
	s.Mount(ctx)
	s.Form().OpenCreate()
	listCalls := len(crm.queries(NameLeads))

	crm.mutateErr = apperrors.NewApplicationError("Validation failed", map[string][]string{
		"lead_Title": {"The title field is required."},
	})
	res := s.Create(ctx, crmclient.LeadForm{})

	assert.False(t, res.OK)
	form := s.Form().Snapshot()
	assert.True(t, form.Open)
	assert.Equal(t, ModeCreate, form.Mode)
	assert.Equal(t, map[string]string{"lead_Title": "The title field is required."}, form.Errors)
	assert.Len(t, crm.queries(NameLeads), listCalls)
}

func TestLeads_CreateSuccessClosesFormAndRefreshes(t *testing.T) {
	ctx := context.Background()
	s, crm, n := newLeadsScreen(t)
	s.Mount(ctx)
	s.Form().OpenCreate()
	listCalls := len(crm.queries(NameLeads))

	res := s.Create(ctx, crmclient.LeadForm{Title: "New"})
	assert.True(t, res.OK)
	assert.False(t, s.Form().Snapshot().Open)
	assert.Len(t, crm.queries(NameLeads), listCalls+1)
	assert.Len(t, s.Result().Rows, 2)
	assert.Equal(t, []string{"Lead created"}, n.successes)
}

func TestLeads_DeleteOpenLeadClosesDetail(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newLeadsScreen(t)
	s.Mount(ctx)
	s.OpenDetail(ctx, 7)

	res := s.Delete(ctx, 7)
	assert.True(t, res.OK)
	assert.Equal(t, detail.PhaseIdle, s.Detail().Phase)
	assert.Empty(t, s.Result().Rows)
}

func TestLeads_OpenMissingLead(t *testing.T) {
	s, _, _ := newLeadsScreen(t)
	s.OpenDetail(context.Background(), 404)
	assert.Equal(t, detail.PhaseNotFound, s.Detail().Phase)
}

func TestLeads_Tracker(t *testing.T) {
	s, _, _ := newLeadsScreen(t)
	events, err := s.Tracker(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Pending", events[0].NewStatus)

	_, err = s.Tracker(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestList_PageIsClampedToTotalPages(t *testing.T) {
	ctx := context.Background()
	s, crm, _ := newLeadsScreen(t)
	s.Mount(ctx)

	v := s.Page(ctx, 10)
	assert.Equal(t, 3, v.Query.Page)

	v = s.Page(ctx, 0)
	assert.Equal(t, 1, v.Query.Page)

	queries := crm.queries(NameLeads)
	assert.Equal(t, 1, queries[len(queries)-1].Page)
}

func TestList_QueryOperationsResetPage(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newLeadsScreen(t)
	s.Mount(ctx)

	s.Page(ctx, 3)
	assert.Equal(t, 1, s.Sort(ctx, "lead_Title").Query.Page)
	s.Page(ctx, 3)
	assert.Equal(t, 1, s.StatusFilter(ctx, "Pending").Query.Page)
	s.Page(ctx, 3)
	v := s.Limit(ctx, 20)
	assert.Equal(t, 1, v.Query.Page)
	assert.Equal(t, 20, v.Query.Limit)

	v = s.Clear(ctx)
	assert.Equal(t, 20, v.Query.Limit)
	assert.Empty(t, v.Query.StatusFilter)
	assert.Empty(t, v.Query.Sort)
}

func TestList_UnsupportedFilter(t *testing.T) {
	s, _, _ := newLeadsScreen(t)
	_, err := s.Filter(context.Background(), "lead_Assigned_To", 3)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestList_FetchErrorEmptiesRows(t *testing.T) {
	ctx := context.Background()
	s, crm, _ := newLeadsScreen(t)
	s.Mount(ctx)
	require.NotEmpty(t, s.Result().Rows)

	crm.listErr = apperrors.ErrTransport
	v := s.Refresh(ctx)

	res := v.Result.(listing.ResultSet[crmclient.Lead])
	assert.Empty(t, res.Rows)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, "Failed to fetch leads", res.Error)
}

// Одновременные поиски: после того как все вернулись, строки результата
// должны соответствовать поиску, который остался в Query State.
func TestList_ConcurrentSearchesKeepResultInStep(t *testing.T) {
	ctx := context.Background()
	l := newList(NameLeads, func(_ context.Context, q query.State) (listing.Page[string], error) {
		return listing.Page[string]{Rows: []string{q.Search}, TotalPages: 1}, nil
	}, nil, zap.NewNop())

	for iter := 0; iter < 300; iter++ {
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				l.Search(ctx, strconv.Itoa(i))
			}(i)
		}
		wg.Wait()

		res := l.Result()
		require.Len(t, res.Rows, 1, "iter %d", iter)
		require.Equal(t, l.Query().Search, res.Rows[0], "iter %d", iter)
		require.False(t, res.Loading, "iter %d", iter)
	}
}
