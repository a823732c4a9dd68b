package screens

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"crm-console/internal/console/mutation"
	"crm-console/internal/console/notify"
	"crm-console/internal/crmclient"
	apperrors "crm-console/pkg/errors"
)

// API - всё, что экраны вызывают у CRM. *crmclient.Client реализует его целиком.
type API interface {
	LeadsAPI
	UsersAPI
	RolesAPI
	PermissionsAPI
	AssignedAPI
	ReportAPI
}

// APIFactory выдаёт клиента, подписывающего запросы токеном сессии.
type APIFactory func(cred crmclient.Credential) API

func ClientFactory(client *crmclient.Client) APIFactory {
	return func(cred crmclient.Credential) API { return client.WithCredential(cred) }
}

// Notifier - тосты мутаций и сигналы об изменении экранов.
type Notifier interface {
	mutation.Notifier
	ScreenUpdated(ctx context.Context, screen, part string)
}

// Workspace - экраны одной сессии консоли.
type Workspace struct {
	sessionID string
	api       API
	protocol  *mutation.Protocol
	notifier  Notifier
	logger    *zap.Logger

	mu      sync.Mutex
	screens map[string]Screen
}

func NewWorkspace(sessionID string, api API, notifier Notifier, logger *zap.Logger) *Workspace {
	logger = logger.With(zap.String("session", sessionID))
	return &Workspace{
		sessionID: sessionID,
		api:       api,
		protocol:  mutation.NewProtocol(notifier, logger),
		notifier:  notifier,
		logger:    logger.Named("workspace"),
		screens:   make(map[string]Screen),
	}
}

func (w *Workspace) changed(screen, part string) {
	if w.notifier == nil {
		return
	}
	w.notifier.ScreenUpdated(notify.WithSessionID(context.Background(), w.sessionID), screen, part)
}

func (w *Workspace) build(name string) (Screen, error) {
	switch name {
	case NameLeads:
		return NewLeads(w.api, w.protocol, w.changed, w.logger), nil
	case NameUsers:
		return NewUsers(w.api, w.protocol, w.changed, w.logger), nil
	case NameRoles:
		return NewRoles(w.api, w.protocol, w.changed, w.logger), nil
	case NamePermissions:
		return NewPermissions(w.api, w.protocol, w.changed, w.logger), nil
	case NameAssigned:
		return NewAssigned(w.api, w.changed, w.logger), nil
	case NameReport:
		return NewReport(w.api, w.changed, w.logger), nil
	}
	return nil, fmt.Errorf("экран %q: %w", name, apperrors.ErrNotFound)
}

// Mount создаёт экран и выполняет первый запрос. Уже смонтированный экран
// возвращается как есть, без повторного запроса.
func (w *Workspace) Mount(ctx context.Context, name string) (View, error) {
	screen, created, err := w.screen(name)
	if err != nil {
		return View{}, err
	}
	if created {
		return screen.Mount(ctx), nil
	}
	return screen.View(), nil
}

// Screen возвращает экран, монтируя его при первом обращении.
func (w *Workspace) Screen(ctx context.Context, name string) (Screen, error) {
	screen, created, err := w.screen(name)
	if err != nil {
		return nil, err
	}
	if created {
		screen.Mount(ctx)
	}
	return screen, nil
}

// Apply выполняет списочную операцию. Для ещё не открытого экрана операция
// применяется к свежему Query State и сама становится первым запросом списка.
func (w *Workspace) Apply(ctx context.Context, name string, op func(Screen) (View, error)) (View, error) {
	screen, created, err := w.screen(name)
	if err != nil {
		return View{}, err
	}
	v, err := op(screen)
	if err != nil && created {
		w.mu.Lock()
		if w.screens[name] == screen {
			delete(w.screens, name)
		}
		w.mu.Unlock()
	}
	return v, err
}

func (w *Workspace) screen(name string) (Screen, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok := w.screens[name]; ok {
		return s, false, nil
	}
	s, err := w.build(name)
	if err != nil {
		return nil, false, err
	}
	w.screens[name] = s
	w.logger.Debug("Экран смонтирован", zap.String("screen", name))
	return s, true, nil
}

// Unmount закрывает экран; следующий Mount начнёт с чистого состояния.
func (w *Workspace) Unmount(name string) {
	w.mu.Lock()
	s, ok := w.screens[name]
	delete(w.screens, name)
	w.mu.Unlock()
	if ok {
		s.Unmount()
	}
}

func (w *Workspace) Close() {
	w.mu.Lock()
	screens := w.screens
	w.screens = make(map[string]Screen)
	w.mu.Unlock()
	for _, s := range screens {
		s.Unmount()
	}
}

func screenAs[S Screen](ctx context.Context, w *Workspace, name string) (S, error) {
	var zero S
	s, err := w.Screen(ctx, name)
	if err != nil {
		return zero, err
	}
	typed, ok := s.(S)
	if !ok {
		return zero, fmt.Errorf("экран %q имеет тип %T", name, s)
	}
	return typed, nil
}

func (w *Workspace) Leads(ctx context.Context) (*Leads, error) {
	return screenAs[*Leads](ctx, w, NameLeads)
}

func (w *Workspace) Users(ctx context.Context) (*Users, error) {
	return screenAs[*Users](ctx, w, NameUsers)
}

func (w *Workspace) Roles(ctx context.Context) (*Roles, error) {
	return screenAs[*Roles](ctx, w, NameRoles)
}

func (w *Workspace) Permissions(ctx context.Context) (*Permissions, error) {
	return screenAs[*Permissions](ctx, w, NamePermissions)
}

func (w *Workspace) Assigned(ctx context.Context) (*Assigned, error) {
	return screenAs[*Assigned](ctx, w, NameAssigned)
}

func (w *Workspace) Report(ctx context.Context) (*Report, error) {
	return screenAs[*Report](ctx, w, NameReport)
}

// Manager хранит рабочие области по идентификатору сессии.
type Manager struct {
	factory  APIFactory
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time

	mu         sync.Mutex
	workspaces map[string]*Workspace
	expires    map[string]time.Time
	onDrop     []func(sessionID string)
}

// expiring - учётные данные со сроком жизни (сессия консоли).
type expiring interface {
	Expiry() time.Time
}

func NewManager(factory APIFactory, notifier Notifier, logger *zap.Logger) *Manager {
	return &Manager{
		factory:    factory,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
		workspaces: make(map[string]*Workspace),
		expires:    make(map[string]time.Time),
	}
}

// OnDrop регистрирует обработчик закрытия рабочей области.
func (m *Manager) OnDrop(fn func(sessionID string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDrop = append(m.onDrop, fn)
}

// For возвращает рабочую область сессии, создавая её при первом обращении.
func (m *Manager) For(sessionID string, cred crmclient.Credential) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := cred.(expiring); ok {
		m.expires[sessionID] = e.Expiry()
	}
	if w, ok := m.workspaces[sessionID]; ok {
		return w
	}
	w := NewWorkspace(sessionID, m.factory(cred), m.notifier, m.logger)
	m.workspaces[sessionID] = w
	return w
}

// Len - число открытых рабочих областей.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workspaces)
}

// Drop закрывает рабочую область: выход, истёкшая или неизвестная сессия.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	w, ok := m.workspaces[sessionID]
	delete(m.workspaces, sessionID)
	delete(m.expires, sessionID)
	hooks := append(([]func(string))(nil), m.onDrop...)
	m.mu.Unlock()
	if ok {
		w.Close()
	}
	for _, fn := range hooks {
		fn(sessionID)
	}
}

// Sweep закрывает рабочие области, срок сессии которых истёк к моменту now.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	var expired []string
	for id, at := range m.expires {
		if !at.After(now) {
			expired = append(expired, id)
		}
	}
	m.mu.Unlock()

	for _, id := range expired {
		m.Drop(id)
	}
	if len(expired) > 0 {
		m.logger.Info("Закрыты рабочие области истёкших сессий", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// RunSweeper вызывает Sweep с периодом interval до отмены ctx.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(m.now())
		}
	}
}
