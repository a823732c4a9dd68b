package events

// ToastEvent - уведомление об итоге операции для одной сессии консоли.
type ToastEvent struct {
	SessionID string
	Kind      string
	Message   string
}

const (
	ToastSuccess = "success"
	ToastFailure = "error"
)

func (e ToastEvent) Name() string { return "console.toast" }

// ScreenUpdatedEvent - у экрана сессии новый результат списка или детали.
type ScreenUpdatedEvent struct {
	SessionID string
	Screen    string
	Part      string
}

func (e ScreenUpdatedEvent) Name() string { return "console.screen.updated" }
