// Package detail держит одну открытую запись сущности со своим жизненным циклом,
// независимым от списка.
package detail

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	apperrors "crm-console/pkg/errors"
)

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseLoading  Phase = "loading"
	PhaseReady    Phase = "ready"
	PhaseError    Phase = "error"
	PhaseNotFound Phase = "not_found"
)

const MaxCommentLength = 500

type Loader[T any] func(ctx context.Context, id int) (T, error)

// Draft - несохранённый выбор статуса и комментарий к переходу.
type Draft struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

type Snapshot[T any] struct {
	ID     int    `json:"id"`
	Phase  Phase  `json:"phase"`
	Record *T     `json:"record,omitempty"`
	Error  string `json:"error,omitempty"`
	Draft  Draft  `json:"draft"`
}

type Cache[T any] struct {
	name   string
	loader Loader[T]
	logger *zap.Logger

	mu     sync.Mutex
	seq    uint64
	id     int
	phase  Phase
	record *T
	err    string
	draft  Draft
}

func NewCache[T any](name string, loader Loader[T], logger *zap.Logger) *Cache[T] {
	return &Cache[T]{
		name:   name,
		loader: loader,
		logger: logger.Named("detail").With(zap.String("entity", name)),
		phase:  PhaseIdle,
	}
}

func (c *Cache[T]) snapshotLocked() Snapshot[T] {
	s := Snapshot[T]{ID: c.id, Phase: c.phase, Error: c.err, Draft: c.draft}
	if c.record != nil {
		rec := *c.record
		s.Record = &rec
	}
	return s
}

func (c *Cache[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// CurrentID - id открытой записи, 0 если ничего не открыто.
func (c *Cache[T]) CurrentID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseIdle {
		return 0
	}
	return c.id
}

// Open сбрасывает предыдущую запись и черновик и загружает новую.
func (c *Cache[T]) Open(ctx context.Context, id int) Snapshot[T] {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.id = id
	c.phase = PhaseLoading
	c.record = nil
	c.err = ""
	c.draft = Draft{}
	c.mu.Unlock()

	return c.load(ctx, seq, id)
}

// Reload перечитывает открытую запись; текущая запись видна до прихода ответа.
func (c *Cache[T]) Reload(ctx context.Context) Snapshot[T] {
	c.mu.Lock()
	if c.phase == PhaseIdle {
		s := c.snapshotLocked()
		c.mu.Unlock()
		return s
	}
	c.seq++
	seq := c.seq
	id := c.id
	c.phase = PhaseLoading
	c.mu.Unlock()

	return c.load(ctx, seq, id)
}

func (c *Cache[T]) load(ctx context.Context, seq uint64, id int) Snapshot[T] {
	rec, err := c.loader(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		c.logger.Debug("Устаревший ответ детали отброшен", zap.Int("id", id))
		return c.snapshotLocked()
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.phase = PhaseNotFound
		c.record = nil
		c.err = fmt.Sprintf("%s not found", c.name)
	case err != nil:
		c.phase = PhaseError
		c.err = apperrors.UserMessage(err, "Failed to fetch "+c.name+" details")
		c.logger.Warn("Не удалось загрузить запись", zap.Int("id", id), zap.Error(err))
	default:
		c.phase = PhaseReady
		c.record = &rec
		c.err = ""
	}
	return c.snapshotLocked()
}

// Close возвращает кэш в idle и забывает запись, ошибку и черновик.
func (c *Cache[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.id = 0
	c.phase = PhaseIdle
	c.record = nil
	c.err = ""
	c.draft = Draft{}
}

// SetDraft запоминает выбранный статус и комментарий.
func (c *Cache[T]) SetDraft(status, comment string) error {
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return apperrors.NewApplicationError("Comment is too long", map[string][]string{
			"comment": {fmt.Sprintf("comment must be at most %d characters", MaxCommentLength)},
		})
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseIdle {
		return fmt.Errorf("%s: запись не открыта: %w", c.name, apperrors.ErrBadRequest)
	}
	c.draft = Draft{Status: status, Comment: comment}
	return nil
}

func (c *Cache[T]) ResetDraft() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = Draft{}
}

func (c *Cache[T]) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}
