package screens

import (
	"maps"
	"sync"
)

type FormMode string

const (
	ModeCreate FormMode = "create"
	ModeEdit   FormMode = "edit"
)

type FormSnapshot struct {
	Open   bool              `json:"open"`
	Mode   FormMode          `json:"mode,omitempty"`
	EditID int               `json:"editId,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// FormState - модальная форма экрана. Реализует mutation.Form.
type FormState struct {
	mu    sync.Mutex
	state FormSnapshot
	// onClose вызывается после закрытия (сброс черновика статуса).
	onClose func()
}

func NewFormState() *FormState { return &FormState{} }

func (f *FormState) OpenCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = FormSnapshot{Open: true, Mode: ModeCreate}
}

func (f *FormState) OpenEdit(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = FormSnapshot{Open: true, Mode: ModeEdit, EditID: id}
}

// SetErrors держит форму открытой и показывает ошибки полей.
func (f *FormState) SetErrors(fields map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Open = true
	f.state.Errors = maps.Clone(fields)
}

func (f *FormState) Close() {
	f.mu.Lock()
	f.state = FormSnapshot{}
	onClose := f.onClose
	f.mu.Unlock()
	if onClose != nil {
		onClose()
	}
}

func (f *FormState) Snapshot() FormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.state
	s.Errors = maps.Clone(f.state.Errors)
	return s
}
