package listing

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"crm-console/internal/console/query"
	apperrors "crm-console/pkg/errors"
)

// Lister выполняет один списочный запрос для снимка Query State.
type Lister[T any] func(ctx context.Context, q query.State) (Page[T], error)

// Coordinator сводит ответы списочных запросов в ResultSet.
// Побеждает последний выданный запрос: ответ с устаревшим номером отбрасывается,
// а сам устаревший запрос отменяется через контекст.
type Coordinator[T any] struct {
	name   string
	lister Lister[T]
	logger *zap.Logger

	mu       sync.Mutex
	seq      uint64
	cancel   context.CancelFunc
	result   ResultSet[T]
	onChange func(ResultSet[T])
}

func NewCoordinator[T any](name string, lister Lister[T], logger *zap.Logger) *Coordinator[T] {
	return &Coordinator[T]{
		name:   name,
		lister: lister,
		logger: logger.Named("listing").With(zap.String("list", name)),
		result: ResultSet[T]{Rows: []T{}, Page: 1, Limit: query.DefaultLimit, TotalPages: 1},
	}
}

// OnChange регистрирует обработчик, вызываемый при каждом изменении результата.
func (c *Coordinator[T]) OnChange(fn func(ResultSet[T])) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

func (c *Coordinator[T]) Result() ResultSet[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result.clone()
}

// Ticket - выданный, но ещё не выполненный запрос списка.
type Ticket[T any] struct {
	seq     uint64
	ctx     context.Context
	cancel  context.CancelFunc
	q       query.State
	loading ResultSet[T]
}

// Fetch блокируется до ответа и возвращает актуальный ResultSet.
// Пока запрос в полёте, строки предыдущего результата сохраняются.
func (c *Coordinator[T]) Fetch(ctx context.Context, q query.State) ResultSet[T] {
	return c.Await(c.Begin(ctx, q))
}

// Begin выдаёт номер запроса и переводит результат в loading. Сети не касается,
// поэтому его можно звать под блокировкой владельца Query State: порядок
// номеров тогда совпадает с порядком изменений состояния.
func (c *Coordinator[T]) Begin(ctx context.Context, q query.State) Ticket[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	if c.cancel != nil {
		c.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.result.Loading = true
	c.result.Error = ""
	return Ticket[T]{seq: c.seq, ctx: reqCtx, cancel: cancel, q: q.Clone(), loading: c.result.clone()}
}

// Await выполняет запрос по билету. Ответ устаревшего билета отбрасывается.
func (c *Coordinator[T]) Await(t Ticket[T]) ResultSet[T] {
	seq, reqCtx, cancel, q := t.seq, t.ctx, t.cancel, t.q

	c.mu.Lock()
	onChange := c.onChange
	stale := seq != c.seq
	c.mu.Unlock()

	if stale {
		cancel()
		c.logger.Debug("Запрос вытеснен до отправки", zap.Uint64("seq", seq))
		return c.Result()
	}
	if onChange != nil {
		onChange(t.loading)
	}

	page, err := c.lister(reqCtx, q)

	c.mu.Lock()
	if seq != c.seq {
		current := c.result.clone()
		c.mu.Unlock()
		cancel()
		c.logger.Debug("Устаревший ответ отброшен", zap.Uint64("seq", seq), zap.Error(err))
		return current
	}
	cancel()
	c.cancel = nil

	if err != nil {
		c.result = ResultSet[T]{
			Rows:       []T{},
			Page:       q.Page,
			Limit:      q.Limit,
			TotalPages: 1,
			Error:      apperrors.UserMessage(err, "Failed to fetch "+c.name),
		}
		c.logFailure(err)
	} else {
		rows := page.Rows
		if rows == nil {
			rows = []T{}
		}
		c.result = ResultSet[T]{
			Rows:       rows,
			Page:       q.Page,
			Limit:      q.Limit,
			TotalPages: DeriveTotalPages(page.TotalPages, len(rows), q.Page, q.Limit),
			Summary:    page.Summary,
		}
	}
	out := c.result.clone()
	onChange = c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange(out)
	}
	return out
}

func (c *Coordinator[T]) logFailure(err error) {
	var appErr *apperrors.ApplicationError
	if errors.As(err, &appErr) {
		c.logger.Warn("Сервер вернул ошибку списка", zap.String("msg", appErr.Message))
		return
	}
	c.logger.Error("Не удалось получить список", zap.Error(err))
}
