package listing

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crm-console/internal/console/query"
	apperrors "crm-console/pkg/errors"
)

func rowsOf(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("row-%d", i)
	}
	return out
}

func TestDeriveTotalPages(t *testing.T) {
	assert.Equal(t, 3, DeriveTotalPages(0, 5, 3, 10))
	assert.Equal(t, 4, DeriveTotalPages(0, 10, 3, 10))
	assert.Equal(t, 1, DeriveTotalPages(0, 0, 1, 10))
	assert.Equal(t, 7, DeriveTotalPages(7, 10, 3, 10))
}

func TestCoordinator_SuccessDerivesTotalPages(t *testing.T) {
	n := 5
	c := NewCoordinator("leads", func(ctx context.Context, q query.State) (Page[string], error) {
		return Page[string]{Rows: rowsOf(n)}, nil
	}, zap.NewNop())

	q := query.New().SetPage(3)
	res := c.Fetch(context.Background(), q)
	assert.Len(t, res.Rows, 5)
	assert.Equal(t, 3, res.TotalPages)
	assert.False(t, res.Loading)
	assert.Empty(t, res.Error)

	n = 10
	res = c.Fetch(context.Background(), q)
	assert.Equal(t, 4, res.TotalPages)
}

func TestCoordinator_ErrorEmptiesRows(t *testing.T) {
	fail := false
	c := NewCoordinator("users", func(ctx context.Context, q query.State) (Page[string], error) {
		if fail {
			return Page[string]{}, fmt.Errorf("post: %w", apperrors.ErrTransport)
		}
		return Page[string]{Rows: rowsOf(3), TotalPages: 2}, nil
	}, zap.NewNop())

	res := c.Fetch(context.Background(), query.New())
	require.Len(t, res.Rows, 3)

	fail = true
	res = c.Fetch(context.Background(), query.New())
	assert.Empty(t, res.Rows)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, "Failed to fetch users", res.Error)
}

func TestCoordinator_ApplicationErrorMessageShownVerbatim(t *testing.T) {
	c := NewCoordinator("roles", func(ctx context.Context, q query.State) (Page[string], error) {
		return Page[string]{}, apperrors.NewApplicationError("Session expired", nil)
	}, zap.NewNop())

	res := c.Fetch(context.Background(), query.New())
	assert.Equal(t, "Session expired", res.Error)
}

func TestCoordinator_EmptyPageIsNotAnError(t *testing.T) {
	c := NewCoordinator("leads", func(ctx context.Context, q query.State) (Page[string], error) {
		return Page[string]{Rows: nil}, nil
	}, zap.NewNop())

	res := c.Fetch(context.Background(), query.New())
	assert.NotNil(t, res.Rows)
	assert.Empty(t, res.Rows)
	assert.Empty(t, res.Error)
	assert.Equal(t, 1, res.TotalPages)
}

// Q1 выдан раньше Q2, но отвечает позже: результат должен остаться от Q2.
func TestCoordinator_LastIssuedWins(t *testing.T) {
	started := map[string]chan struct{}{"q1": make(chan struct{}), "q2": make(chan struct{})}
	release := map[string]chan struct{}{"q1": make(chan struct{}), "q2": make(chan struct{})}
	var q1Cancelled bool
	var mu sync.Mutex

	c := NewCoordinator("leads", func(ctx context.Context, q query.State) (Page[string], error) {
		close(started[q.Search])
		<-release[q.Search]
		if q.Search == "q1" {
			mu.Lock()
			q1Cancelled = ctx.Err() != nil
			mu.Unlock()
		}
		return Page[string]{Rows: []string{q.Search}, TotalPages: 1}, nil
	}, zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.Fetch(context.Background(), query.New().SetSearch("q1"))
	}()
	<-started["q1"]

	loadingSeen := make(chan ResultSet[string], 4)
	c.OnChange(func(r ResultSet[string]) { loadingSeen <- r })

	go func() {
		defer wg.Done()
		c.Fetch(context.Background(), query.New().SetSearch("q2"))
	}()
	<-started["q2"]

	close(release["q2"])
	close(release["q1"])
	wg.Wait()

	res := c.Result()
	assert.Equal(t, []string{"q2"}, res.Rows)
	assert.False(t, res.Loading)

	mu.Lock()
	assert.True(t, q1Cancelled, "устаревший запрос должен быть отменён")
	mu.Unlock()

	select {
	case first := <-loadingSeen:
		assert.True(t, first.Loading)
	case <-time.After(time.Second):
		t.Fatal("нет уведомления о загрузке")
	}
}

func TestCoordinator_LoadingKeepsPreviousRows(t *testing.T) {
	gate := make(chan struct{})
	calls := 0
	c := NewCoordinator("leads", func(ctx context.Context, q query.State) (Page[string], error) {
		calls++
		if calls == 2 {
			<-gate
		}
		return Page[string]{Rows: rowsOf(2), TotalPages: 1}, nil
	}, zap.NewNop())
	c.Fetch(context.Background(), query.New())

	seen := make(chan ResultSet[string], 2)
	c.OnChange(func(r ResultSet[string]) { seen <- r })

	done := make(chan struct{})
	go func() {
		c.Fetch(context.Background(), query.New().SetPage(2))
		close(done)
	}()

	loading := <-seen
	assert.True(t, loading.Loading)
	assert.Len(t, loading.Rows, 2)

	close(gate)
	<-done
	assert.False(t, c.Result().Loading)
}

func TestCoordinator_LoadingClearsPreviousError(t *testing.T) {
	fail := true
	c := NewCoordinator("leads", func(ctx context.Context, q query.State) (Page[string], error) {
		if fail {
			return Page[string]{}, fmt.Errorf("post: %w", apperrors.ErrTransport)
		}
		return Page[string]{Rows: rowsOf(1), TotalPages: 1}, nil
	}, zap.NewNop())

	res := c.Fetch(context.Background(), query.New())
	require.Equal(t, "Failed to fetch leads", res.Error)

	var snapshots []ResultSet[string]
	c.OnChange(func(r ResultSet[string]) { snapshots = append(snapshots, r) })

	fail = false
	res = c.Fetch(context.Background(), query.New())
	assert.Empty(t, res.Error)

	require.Len(t, snapshots, 2)
	assert.True(t, snapshots[0].Loading)
	assert.Empty(t, snapshots[0].Error, "loading и error не бывают одновременно")
}

// Номер запроса фиксируется в Begin: билет, выданный раньше, проигрывает
// даже если выполняется последним.
func TestCoordinator_TicketOrderDecides(t *testing.T) {
	c := NewCoordinator("leads", func(ctx context.Context, q query.State) (Page[string], error) {
		return Page[string]{Rows: []string{q.Search}, TotalPages: 1}, nil
	}, zap.NewNop())

	first := c.Begin(context.Background(), query.New().SetSearch("s1"))
	second := c.Begin(context.Background(), query.New().SetSearch("s2"))

	res := c.Await(second)
	assert.Equal(t, []string{"s2"}, res.Rows)

	res = c.Await(first)
	assert.Equal(t, []string{"s2"}, res.Rows)
	assert.False(t, res.Loading)
	assert.Equal(t, []string{"s2"}, c.Result().Rows)
}
