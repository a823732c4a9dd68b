package detail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "crm-console/pkg/errors"
)

type lead struct {
	ID     int
	Status string
}

func TestCache_OpenReadyAndClose(t *testing.T) {
	c := NewCache("lead", func(ctx context.Context, id int) (lead, error) {
		return lead{ID: id, Status: "Pending"}, nil
	}, zap.NewNop())

	snap := c.Open(context.Background(), 7)
	require.Equal(t, PhaseReady, snap.Phase)
	assert.Equal(t, 7, snap.Record.ID)
	assert.Equal(t, 7, c.CurrentID())

	require.NoError(t, c.SetDraft("Completed", "done"))
	assert.Equal(t, Draft{Status: "Completed", Comment: "done"}, c.Draft())

	c.Close()
	snap = c.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Nil(t, snap.Record)
	assert.Empty(t, snap.Error)
	assert.Equal(t, Draft{}, snap.Draft)
	assert.Equal(t, 0, c.CurrentID())
}

func TestCache_NotFoundAndError(t *testing.T) {
	c := NewCache("lead", func(ctx context.Context, id int) (lead, error) {
		if id == 404 {
			return lead{}, fmt.Errorf("lead %d: %w", id, apperrors.ErrNotFound)
		}
		return lead{}, fmt.Errorf("dial: %w", apperrors.ErrTransport)
	}, zap.NewNop())

	snap := c.Open(context.Background(), 404)
	assert.Equal(t, PhaseNotFound, snap.Phase)
	assert.Equal(t, "lead not found", snap.Error)

	snap = c.Open(context.Background(), 1)
	assert.Equal(t, PhaseError, snap.Phase)
	assert.Equal(t, "Failed to fetch lead details", snap.Error)
}

func TestCache_CommentLimit(t *testing.T) {
	c := NewCache("lead", func(ctx context.Context, id int) (lead, error) { return lead{ID: id}, nil }, zap.NewNop())
	c.Open(context.Background(), 1)

	assert.NoError(t, c.SetDraft("Working", strings.Repeat("я", MaxCommentLength)))

	err := c.SetDraft("Working", strings.Repeat("a", MaxCommentLength+1))
	var appErr *apperrors.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "comment")
	assert.Equal(t, "Working", c.Draft().Status, "отклонённый черновик не должен перезаписать прежний")
}

func TestCache_SetDraftRequiresOpenRecord(t *testing.T) {
	c := NewCache("lead", func(ctx context.Context, id int) (lead, error) { return lead{ID: id}, nil }, zap.NewNop())
	assert.ErrorIs(t, c.SetDraft("Pending", ""), apperrors.ErrBadRequest)
}

func TestCache_ReloadKeepsDraftAndRecord(t *testing.T) {
	status := "Pending"
	c := NewCache("lead", func(ctx context.Context, id int) (lead, error) {
		return lead{ID: id, Status: status}, nil
	}, zap.NewNop())
	c.Open(context.Background(), 3)
	require.NoError(t, c.SetDraft("Completed", "ok"))

	status = "Completed"
	snap := c.Reload(context.Background())
	assert.Equal(t, "Completed", snap.Record.Status)
	assert.Equal(t, "ok", snap.Draft.Comment)
}

func TestCache_ReloadWhenIdleIsNoop(t *testing.T) {
	calls := 0
	c := NewCache("lead", func(ctx context.Context, id int) (lead, error) {
		calls++
		return lead{}, nil
	}, zap.NewNop())

	snap := c.Reload(context.Background())
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Zero(t, calls)
}

// Открытие другой записи во время загрузки отбрасывает первый ответ.
func TestCache_StaleOpenDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	c := NewCache("lead", func(ctx context.Context, id int) (lead, error) {
		if id == 1 {
			close(started)
			<-release
		}
		return lead{ID: id}, nil
	}, zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Open(context.Background(), 1)
	}()
	<-started

	c.Open(context.Background(), 2)
	close(release)
	wg.Wait()

	snap := c.Snapshot()
	require.Equal(t, PhaseReady, snap.Phase)
	assert.Equal(t, 2, snap.Record.ID)
}
