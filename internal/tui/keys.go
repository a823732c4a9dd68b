package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
)

// KeyMap - привязки клавиш терминальной консоли.
type KeyMap struct {
	Submit    key.Binding
	Back      key.Binding
	NextField key.Binding

	Open      key.Binding
	Search    key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	SortLeft  key.Binding
	SortRight key.Binding
	Sort      key.Binding
	Filter    key.Binding
	Clear     key.Binding
	Refresh   key.Binding

	ChangeStatus key.Binding
	StatusPrev   key.Binding
	StatusNext   key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

var DefaultKeyMap = KeyMap{
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	NextField: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),

	Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	NextPage:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next page")),
	PrevPage:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev page")),
	SortLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "column")),
	SortRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "column")),
	Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "status filter")),
	Clear:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),

	ChangeStatus: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "change status")),
	StatusPrev:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev status")),
	StatusNext:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next status")),

	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
}

// tableKeyMap убирает у таблицы буквенные клавиши, занятые консолью.
func tableKeyMap() table.KeyMap {
	km := table.DefaultKeyMap()
	km.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	km.PageUp = key.NewBinding(key.WithKeys("pgup"))
	km.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	km.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))
	return km
}

// helpKeys реализует help.KeyMap для подсказки текущего режима.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding  { return h }
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func (m Model) helpFor() helpKeys {
	k := m.keys
	switch m.phase {
	case phaseLogin, phaseChangePassword:
		return helpKeys{k.NextField, k.Submit, k.ForceQuit}
	case phaseSearch:
		return helpKeys{k.Submit, k.Back}
	case phaseDetail:
		return helpKeys{k.ChangeStatus, k.Refresh, k.Back, k.Quit}
	case phaseStatus:
		return helpKeys{k.StatusPrev, k.StatusNext, k.Submit, k.Back}
	}
	return helpKeys{k.Open, k.Search, k.PrevPage, k.NextPage, k.SortLeft, k.Sort, k.Filter, k.Clear, k.Refresh, k.Quit}
}
