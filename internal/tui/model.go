// Package tui is a terminal front end for the console core. It signs in
// against the CRM API and drives the same leads screen the gateway serves:
// the list with search, status filter, sorting and paging, and the lead
// detail with its status history and status change form.
package tui

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"crm-console/internal/console/detail"
	"crm-console/internal/console/listing"
	"crm-console/internal/console/mutation"
	"crm-console/internal/console/query"
	"crm-console/internal/console/screens"
	"crm-console/internal/crmclient"
	"crm-console/internal/events"
	apperrors "crm-console/pkg/errors"
)

// LeadBoard - часть экрана лидов, которой пользуется терминал.
// *screens.Leads реализует его целиком.
type LeadBoard interface {
	Refresh(ctx context.Context) screens.View
	Search(ctx context.Context, text string) screens.View
	StatusFilter(ctx context.Context, status string) screens.View
	Sort(ctx context.Context, field string) screens.View
	Page(ctx context.Context, n int) screens.View
	Clear(ctx context.Context) screens.View
	Query() query.State
	Result() listing.ResultSet[crmclient.Lead]

	OpenDetail(ctx context.Context, id int) screens.View
	CloseDetail()
	Detail() detail.Snapshot[crmclient.Lead]
	SetStatusDraft(status, comment string) error
	Statuses(ctx context.Context) ([]crmclient.LeadStatus, error)
	ChangeStatus(ctx context.Context) mutation.Result
}

// Authenticator - вход и принудительная смена пароля.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (crmclient.LoginResult, error)
	ChangePassword(ctx context.Context, token, oldPassword, newPassword, confirm string) (string, error)
}

// BoardFactory возвращает смонтированный экран лидов сессии с токеном token.
type BoardFactory func(ctx context.Context, token string) (LeadBoard, error)

type phase int

const (
	phaseLogin phase = iota
	phaseChangePassword
	phaseLeads
	phaseSearch
	phaseDetail
	phaseStatus
)

type sortColumn struct {
	title string
	field string
	width int
}

var leadColumns = []sortColumn{
	{"#", "lead_Id", 5},
	{"Title", "lead_Title", 26},
	{"Contact", "lead_Contact_Name", 18},
	{"Email", "lead_Contact_Email", 24},
	{"Status", "lead_Status", 11},
	{"Assigned to", "lead_Assigned_To_Name", 16},
}

type (
	loginMsg struct {
		result crmclient.LoginResult
		err    error
	}
	passwordMsg struct {
		message string
		err     error
	}
	boardMsg struct {
		board     LeadBoard
		statuses  []crmclient.LeadStatus
		err       error
		statusErr error
	}
	listMsg     struct{}
	detailMsg   struct{}
	mutationMsg struct{ result mutation.Result }
	eventMsg    struct {
		event Event
		ok    bool
	}
)

type Model struct {
	auth    Authenticator
	factory BoardFactory
	events  <-chan Event
	timeout time.Duration
	keys    KeyMap

	phase  phase
	width  int
	height int

	login    []textinput.Model
	password []textinput.Model
	focus    int
	token    string

	board      LeadBoard
	statuses   []crmclient.LeadStatus
	table      table.Model
	rowIDs     []int
	search     textinput.Model
	sortCursor int
	filter     int

	statusCursor int
	comment      textinput.Model

	spinner spinner.Model
	help    help.Model
	// незавершённые команды по областям: список и деталь грузятся независимо
	pending [regionCount]int

	toast       string
	toastKind   string
	err         string
	fieldErrors map[string]string
}

type region int

const (
	regionAuth region = iota
	regionList
	regionDetail
	regionCount
)

type Option func(*Model)

// WithEvents подписывает модель на тосты и сигналы экранов.
func WithEvents(ch <-chan Event) Option {
	return func(m *Model) { m.events = ch }
}

func WithTimeout(d time.Duration) Option {
	return func(m *Model) { m.timeout = d }
}

func WithEmail(email string) Option {
	return func(m *Model) {
		m.login[0].SetValue(email)
		if email != "" {
			m.focus = 1
		}
	}
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func New(auth Authenticator, factory BoardFactory, opts ...Option) Model {
	tbl := table.New(table.WithFocused(true), table.WithHeight(12), table.WithKeyMap(tableKeyMap()))

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	comment := newInput("comment (optional)", false)
	comment.CharLimit = detail.MaxCommentLength + 1

	m := Model{
		auth:     auth,
		factory:  factory,
		timeout:  30 * time.Second,
		keys:     DefaultKeyMap,
		login:    []textinput.Model{newInput("email", false), newInput("password", true)},
		password: []textinput.Model{newInput("current password", true), newInput("new password", true), newInput("confirm new password", true)},
		table:    tbl,
		search:   newInput("search leads", false),
		comment:  comment,
		spinner:  sp,
		help:     help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.login = focusOnly(m.login, m.focus)
	m.table.SetColumns(m.columns())
	return m
}

func (m Model) Init() tea.Cmd {
	return m.listen()
}

func (m Model) listen() tea.Cmd {
	if m.events == nil {
		return nil
	}
	ch := m.events
	return func() tea.Msg {
		e, ok := <-ch
		return eventMsg{event: e, ok: ok}
	}
}

func (m Model) busy() bool {
	for _, n := range m.pending {
		if n > 0 {
			return true
		}
	}
	return false
}

func (m Model) loading(r region) bool { return m.pending[r] > 0 }

func (m *Model) done(r region) {
	if m.pending[r] > 0 {
		m.pending[r]--
	}
}

// start помечает область занятой и запускает fn вне цикла отрисовки.
func (m *Model) start(r region, fn func(ctx context.Context) tea.Msg) tea.Cmd {
	idle := !m.busy()
	m.pending[r]++
	m.err = ""
	timeout := m.timeout
	run := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fn(ctx)
	}
	if !idle {
		return run
	}
	return tea.Batch(m.spinner.Tick, run)
}

func focusOnly(inputs []textinput.Model, i int) []textinput.Model {
	for j := range inputs {
		if j == i {
			inputs[j].Focus()
		} else {
			inputs[j].Blur()
		}
	}
	return inputs
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(5, msg.Height-10))
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		if !msg.ok {
			return m, nil
		}
		return m.handleEvent(msg.event), m.listen()

	case loginMsg:
		return m.handleLogin(msg)

	case passwordMsg:
		m.done(regionAuth)
		if msg.err != nil {
			m = m.showError(msg.err, "Failed to change password")
			return m, nil
		}
		m.phase = phaseLogin
		m.token = ""
		m.password = clearInputs(m.password)
		m.login[1].SetValue("")
		m.focus = 1
		m.login = focusOnly(m.login, m.focus)
		m.toast, m.toastKind = msg.message+". Sign in with the new password", events.ToastSuccess
		return m, nil

	case boardMsg:
		m.done(regionAuth)
		if msg.err != nil {
			m.phase = phaseLogin
			m = m.showError(msg.err, "Failed to open leads")
			return m, nil
		}
		m.board = msg.board
		m.statuses = msg.statuses
		m.phase = phaseLeads
		if msg.statusErr != nil {
			m.err = apperrors.UserMessage(msg.statusErr, "Failed to load lead statuses")
		}
		return m.syncTable(), nil

	case listMsg:
		m.done(regionList)
		return m.syncTable(), nil

	case detailMsg:
		m.done(regionDetail)
		return m, nil

	case mutationMsg:
		m.done(regionDetail)
		if !msg.result.OK {
			m.err = msg.result.Message
			m.fieldErrors = msg.result.FieldErrors
			return m, nil
		}
		m.phase = phaseDetail
		m.fieldErrors = nil
		m.toast, m.toastKind = msg.result.Message, events.ToastSuccess
		return m.syncTable(), nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.phase {
		case phaseLogin:
			return m.updateLogin(msg)
		case phaseChangePassword:
			return m.updatePassword(msg)
		case phaseLeads:
			return m.updateLeads(msg)
		case phaseSearch:
			return m.updateSearch(msg)
		case phaseDetail:
			return m.updateDetail(msg)
		case phaseStatus:
			return m.updateStatus(msg)
		}
	}
	return m, nil
}

func (m Model) showError(err error, fallback string) Model {
	m.err = apperrors.UserMessage(err, fallback)
	m.fieldErrors = nil
	var appErr *apperrors.ApplicationError
	if errors.As(err, &appErr) {
		m.fieldErrors = appErr.FirstFieldErrors()
	}
	return m
}

func (m Model) handleEvent(e Event) Model {
	if e.Kind == kindScreen {
		if e.Screen == screens.NameLeads && e.Part == screens.PartList && m.board != nil {
			return m.syncTable()
		}
		return m
	}
	m.toast, m.toastKind = e.Message, e.Kind
	return m
}

func clearInputs(inputs []textinput.Model) []textinput.Model {
	for i := range inputs {
		inputs[i].SetValue("")
	}
	return inputs
}

func (m Model) handleLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	m.done(regionAuth)
	if msg.err != nil {
		m = m.showError(msg.err, "Login failed")
		return m, nil
	}
	m.token = msg.result.Token
	m.fieldErrors = nil
	if msg.result.MustChangePassword {
		m.phase = phaseChangePassword
		m.focus = 0
		m.password = focusOnly(clearInputs(m.password), 0)
		m.toast, m.toastKind = "Password change required", events.ToastFailure
		return m, nil
	}
	factory, token := m.factory, m.token
	cmd := m.start(regionAuth, func(ctx context.Context) tea.Msg {
		board, err := factory(ctx, token)
		if err != nil {
			return boardMsg{err: err}
		}
		statuses, statusErr := board.Statuses(ctx)
		return boardMsg{board: board, statuses: statuses, statusErr: statusErr}
	})
	return m, cmd
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading(regionAuth) {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.NextField):
		m.focus = (m.focus + 1) % len(m.login)
		m.login = focusOnly(m.login, m.focus)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		email, password := m.login[0].Value(), m.login[1].Value()
		if email == "" || password == "" {
			m.err = "Email and password are required"
			return m, nil
		}
		auth := m.auth
		cmd := m.start(regionAuth, func(ctx context.Context) tea.Msg {
			res, err := auth.Login(ctx, email, password)
			return loginMsg{result: res, err: err}
		})
		return m, cmd
	}
	var cmd tea.Cmd
	m.login[m.focus], cmd = m.login[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updatePassword(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading(regionAuth) {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.NextField):
		m.focus = (m.focus + 1) % len(m.password)
		m.password = focusOnly(m.password, m.focus)
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.phase = phaseLogin
		m.token = ""
		m.focus = 1
		m.login = focusOnly(m.login, m.focus)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		auth, token := m.auth, m.token
		oldPwd, newPwd, confirm := m.password[0].Value(), m.password[1].Value(), m.password[2].Value()
		cmd := m.start(regionAuth, func(ctx context.Context) tea.Msg {
			message, err := auth.ChangePassword(ctx, token, oldPwd, newPwd, confirm)
			return passwordMsg{message: message, err: err}
		})
		return m, cmd
	}
	var cmd tea.Cmd
	m.password[m.focus], cmd = m.password[m.focus].Update(msg)
	return m, cmd
}

// list запускает операцию над списком и по готовности перерисовывает таблицу.
func (m *Model) list(op func(ctx context.Context, b LeadBoard)) tea.Cmd {
	board := m.board
	return m.start(regionList, func(ctx context.Context) tea.Msg {
		op(ctx, board)
		return listMsg{}
	})
}

func (m Model) statusFilterName() string {
	if m.filter == 0 || m.filter > len(m.statuses) {
		return ""
	}
	return m.statuses[m.filter-1].Name
}

func (m Model) updateLeads(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	// пока список грузится, новые списочные операции ждут; деталь открывается
	if m.loading(regionList) && key.Matches(msg, k.Search, k.NextPage, k.PrevPage, k.Sort, k.Filter, k.Clear, k.Refresh) {
		return m, nil
	}
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Open):
		i := m.table.Cursor()
		if i < 0 || i >= len(m.rowIDs) {
			return m, nil
		}
		id := m.rowIDs[i]
		m.phase = phaseDetail
		m.fieldErrors = nil
		board := m.board
		cmd := m.start(regionDetail, func(ctx context.Context) tea.Msg {
			board.OpenDetail(ctx, id)
			return detailMsg{}
		})
		return m, cmd

	case key.Matches(msg, k.Search):
		m.phase = phaseSearch
		m.search.SetValue(m.board.Query().Search)
		m.search.CursorEnd()
		m.search.Focus()
		return m, nil

	case key.Matches(msg, k.NextPage):
		q, res := m.board.Query(), m.board.Result()
		if res.TotalPages > 0 && q.Page >= res.TotalPages {
			return m, nil
		}
		return m, m.list(func(ctx context.Context, b LeadBoard) { b.Page(ctx, q.Page+1) })

	case key.Matches(msg, k.PrevPage):
		q := m.board.Query()
		if q.Page <= 1 {
			return m, nil
		}
		return m, m.list(func(ctx context.Context, b LeadBoard) { b.Page(ctx, q.Page-1) })

	case key.Matches(msg, k.SortLeft):
		m.sortCursor = (m.sortCursor + len(leadColumns) - 1) % len(leadColumns)
		m.table.SetColumns(m.columns())
		return m, nil

	case key.Matches(msg, k.SortRight):
		m.sortCursor = (m.sortCursor + 1) % len(leadColumns)
		m.table.SetColumns(m.columns())
		return m, nil

	case key.Matches(msg, k.Sort):
		field := leadColumns[m.sortCursor].field
		return m, m.list(func(ctx context.Context, b LeadBoard) { b.Sort(ctx, field) })

	case key.Matches(msg, k.Filter):
		m.filter = (m.filter + 1) % (len(m.statuses) + 1)
		status := m.statusFilterName()
		return m, m.list(func(ctx context.Context, b LeadBoard) { b.StatusFilter(ctx, status) })

	case key.Matches(msg, k.Clear):
		m.filter = 0
		return m, m.list(func(ctx context.Context, b LeadBoard) { b.Clear(ctx) })

	case key.Matches(msg, k.Refresh):
		return m, m.list(func(ctx context.Context, b LeadBoard) { b.Refresh(ctx) })
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.phase = phaseLeads
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.phase = phaseLeads
		m.search.Blur()
		text := m.search.Value()
		return m, m.list(func(ctx context.Context, b LeadBoard) { b.Search(ctx, text) })
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Back):
		m.board.CloseDetail()
		m.phase = phaseLeads
		return m, nil
	case m.loading(regionDetail):
		return m, nil
	case key.Matches(msg, k.Refresh):
		id := m.board.Detail().ID
		board := m.board
		cmd := m.start(regionDetail, func(ctx context.Context) tea.Msg {
			board.OpenDetail(ctx, id)
			return detailMsg{}
		})
		return m, cmd
	case key.Matches(msg, k.ChangeStatus):
		snap := m.board.Detail()
		if snap.Phase != detail.PhaseReady || snap.Record == nil || len(m.statuses) == 0 {
			return m, nil
		}
		m.statusCursor = 0
		for i, st := range m.statuses {
			if st.Name == snap.Record.Status {
				m.statusCursor = i
			}
		}
		m.phase = phaseStatus
		m.fieldErrors = nil
		m.comment.SetValue("")
		m.comment.Focus()
		return m, nil
	}
	return m, nil
}

func (m Model) updateStatus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	if m.loading(regionDetail) {
		return m, nil
	}
	switch {
	case key.Matches(msg, k.Back):
		m.comment.Blur()
		m.fieldErrors = nil
		m.phase = phaseDetail
		return m, nil
	case key.Matches(msg, k.StatusPrev):
		m.statusCursor = (m.statusCursor + len(m.statuses) - 1) % len(m.statuses)
		return m, nil
	case key.Matches(msg, k.StatusNext):
		m.statusCursor = (m.statusCursor + 1) % len(m.statuses)
		return m, nil
	case key.Matches(msg, k.Submit):
		status := m.statuses[m.statusCursor].Name
		if err := m.board.SetStatusDraft(status, m.comment.Value()); err != nil {
			m = m.showError(err, "Invalid status change")
			return m, nil
		}
		board := m.board
		cmd := m.start(regionDetail, func(ctx context.Context) tea.Msg {
			return mutationMsg{result: board.ChangeStatus(ctx)}
		})
		return m, cmd
	}
	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return m, cmd
}

// columns помечает колонку под курсором сортировки и активное направление.
func (m Model) columns() []table.Column {
	var q query.State
	if m.board != nil {
		q = m.board.Query()
	}
	cols := make([]table.Column, len(leadColumns))
	for i, c := range leadColumns {
		title := c.title
		switch q.SortFor(c.field) {
		case query.Asc:
			title += " ▲"
		case query.Desc:
			title += " ▼"
		}
		if i == m.sortCursor {
			title = "›" + title
		}
		cols[i] = table.Column{Title: title, Width: c.width}
	}
	return cols
}

// syncTable переносит строки текущего результата экрана в таблицу.
func (m Model) syncTable() Model {
	if m.board == nil {
		return m
	}
	res := m.board.Result()
	rows := make([]table.Row, 0, len(res.Rows))
	ids := make([]int, 0, len(res.Rows))
	for _, l := range res.Rows {
		index := l.Index.Int()
		if index == 0 {
			index = l.ID.Int()
		}
		rows = append(rows, table.Row{
			strconv.Itoa(index), l.Title, l.ContactName, l.ContactEmail, l.Status, l.AssignedToName,
		})
		ids = append(ids, l.ID.Int())
	}
	m.table.SetColumns(m.columns())
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
	m.rowIDs = ids
	return m
}
