// Package screens assembles the console's list screens. Each screen owns one
// Query State, one Fetch Coordinator for its list, a modal form and, where the
// entity has one, a detail cache. Screens are safe for concurrent use; network
// calls never run under a screen lock.
package screens

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"crm-console/internal/console/listing"
	"crm-console/internal/console/query"
	apperrors "crm-console/pkg/errors"
)

const (
	NameLeads       = "leads"
	NameUsers       = "users"
	NameRoles       = "roles"
	NamePermissions = "permissions"
	NameAssigned    = "assigned"
	NameReport      = "report"
)

var Names = []string{NameLeads, NameUsers, NameRoles, NamePermissions, NameAssigned, NameReport}

const (
	PartList   = "list"
	PartDetail = "detail"
	PartForm   = "form"
)

// View - всё, что нужно для отрисовки экрана.
type View struct {
	Screen string       `json:"screen"`
	Query  query.State  `json:"query"`
	Result any          `json:"result"`
	Form   FormSnapshot `json:"form"`
	Detail any          `json:"detail,omitempty"`
}

// Screen - операции списка, общие для всех экранов.
type Screen interface {
	Name() string
	// Mount выполняет первый запрос списка.
	Mount(ctx context.Context) View
	View() View
	Search(ctx context.Context, text string) View
	StatusFilter(ctx context.Context, status string) View
	Filter(ctx context.Context, name string, value any) (View, error)
	Sort(ctx context.Context, field string) View
	Page(ctx context.Context, n int) View
	Limit(ctx context.Context, n int) View
	Clear(ctx context.Context) View
	Refresh(ctx context.Context) View
	// Unmount забывает состояние экрана.
	Unmount()
}

// ChangeFunc получает имя экрана и изменившуюся часть (list, detail, form).
type ChangeFunc func(screen, part string)

// List - общая часть экранов: Query State, координатор и форма.
type List[T any] struct {
	name    string
	coord   *listing.Coordinator[T]
	form    *FormState
	filters []string
	changed ChangeFunc
	logger  *zap.Logger

	mu    sync.Mutex
	state query.State
	// detailView заполняется экраном с деталью.
	detailView func() any
}

func newList[T any](name string, lister listing.Lister[T], changed ChangeFunc, logger *zap.Logger, filters ...string) *List[T] {
	l := &List[T]{
		name:    name,
		coord:   listing.NewCoordinator(name, lister, logger),
		form:    NewFormState(),
		filters: filters,
		changed: changed,
		logger:  logger.Named("screen").With(zap.String("screen", name)),
		state:   query.New(),
	}
	l.coord.OnChange(func(listing.ResultSet[T]) { l.notify(PartList) })
	return l
}

func (l *List[T]) notify(part string) {
	if l.changed != nil {
		l.changed(l.name, part)
	}
}

func (l *List[T]) Name() string { return l.name }

func (l *List[T]) Query() query.State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

func (l *List[T]) Result() listing.ResultSet[T] { return l.coord.Result() }

func (l *List[T]) Form() *FormState { return l.form }

func (l *List[T]) View() View {
	v := View{
		Screen: l.name,
		Query:  l.Query(),
		Result: l.coord.Result(),
		Form:   l.form.Snapshot(),
	}
	if l.detailView != nil {
		v.Detail = l.detailView()
	}
	return v
}

// update применяет чистую операцию к Query State и перезапрашивает список.
// Номер запроса берётся под той же блокировкой, что и новое состояние, иначе
// последним мог бы оказаться запрос для более старого состояния.
func (l *List[T]) update(ctx context.Context, op func(query.State) query.State) View {
	l.mu.Lock()
	l.state = op(l.state)
	ticket := l.coord.Begin(ctx, l.state)
	l.mu.Unlock()

	l.coord.Await(ticket)
	return l.View()
}

func (l *List[T]) Mount(ctx context.Context) View {
	return l.Refresh(ctx)
}

// Refresh повторяет запрос с текущим Query State.
func (l *List[T]) Refresh(ctx context.Context) View {
	return l.update(ctx, func(s query.State) query.State { return s })
}

func (l *List[T]) refreshList(ctx context.Context) { l.Refresh(ctx) }

func (l *List[T]) Search(ctx context.Context, text string) View {
	return l.update(ctx, func(s query.State) query.State { return s.SetSearch(text) })
}

func (l *List[T]) StatusFilter(ctx context.Context, status string) View {
	return l.update(ctx, func(s query.State) query.State { return s.SetStatusFilter(status) })
}

func (l *List[T]) Filter(ctx context.Context, name string, value any) (View, error) {
	if !slices.Contains(l.filters, name) {
		return View{}, fmt.Errorf("%s: фильтр %q не поддерживается: %w", l.name, name, apperrors.ErrBadRequest)
	}
	return l.update(ctx, func(s query.State) query.State { return s.SetFilter(name, value) }), nil
}

func (l *List[T]) Sort(ctx context.Context, field string) View {
	return l.update(ctx, func(s query.State) query.State { return s.ToggleSort(field) })
}

// Page ограничивает номер диапазоном [1, totalPages] текущего результата.
func (l *List[T]) Page(ctx context.Context, n int) View {
	total := l.coord.Result().TotalPages
	if total > 0 && n > total {
		n = total
	}
	return l.update(ctx, func(s query.State) query.State { return s.SetPage(n) })
}

func (l *List[T]) Limit(ctx context.Context, n int) View {
	return l.update(ctx, func(s query.State) query.State { return s.SetLimit(n) })
}

func (l *List[T]) Clear(ctx context.Context) View {
	return l.update(ctx, func(s query.State) query.State { return s.Clear() })
}

func (l *List[T]) Unmount() {
	l.mu.Lock()
	l.state = query.New()
	l.mu.Unlock()
	l.form.Close()
	l.logger.Debug("Экран закрыт")
}
