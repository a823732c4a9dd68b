// Package mutation runs create/update/delete/status-change submissions and,
// on success, refreshes the open detail record and then the list.
package mutation

import (
	"context"
	"errors"

	"go.uber.org/zap"

	apperrors "crm-console/pkg/errors"
)

// Notifier доставляет тосты презентационному слою.
type Notifier interface {
	Success(ctx context.Context, message string)
	Failure(ctx context.Context, message string)
}

// Form - модальная форма, из которой пришла мутация.
type Form interface {
	SetErrors(fields map[string]string)
	Close()
}

type Request struct {
	Action string
	// Submit возвращает сообщение сервера.
	Submit func(ctx context.Context) (string, error)
	// ReloadDetail вызывается первым, если мутация касается открытой записи.
	ReloadDetail func(ctx context.Context)
	// RefreshList перезапрашивает список с текущим Query State.
	RefreshList func(ctx context.Context)
	Form        Form

	SuccessMessage string
	FailureMessage string
}

type Result struct {
	OK          bool              `json:"ok"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

type Protocol struct {
	notifier Notifier
	logger   *zap.Logger
}

func NewProtocol(notifier Notifier, logger *zap.Logger) *Protocol {
	return &Protocol{notifier: notifier, logger: logger.Named("mutation")}
}

// Run: успех -> деталь -> список -> закрыть форму -> тост.
// Ошибка: без обновления, форма остаётся открытой с ошибками полей.
func (p *Protocol) Run(ctx context.Context, req Request) Result {
	msg, err := req.Submit(ctx)
	if err != nil {
		return p.fail(ctx, req, err)
	}

	if req.ReloadDetail != nil {
		req.ReloadDetail(ctx)
	}
	if req.RefreshList != nil {
		req.RefreshList(ctx)
	}
	if req.Form != nil {
		req.Form.Close()
	}

	if msg == "" {
		msg = req.SuccessMessage
	}
	if p.notifier != nil {
		p.notifier.Success(ctx, msg)
	}
	p.logger.Info("Мутация выполнена", zap.String("action", req.Action))
	return Result{OK: true, Message: msg}
}

func (p *Protocol) fail(ctx context.Context, req Request, err error) Result {
	fallback := req.FailureMessage
	if fallback == "" {
		fallback = "Failed to " + req.Action
	}
	res := Result{Message: apperrors.UserMessage(err, fallback)}

	var appErr *apperrors.ApplicationError
	if errors.As(err, &appErr) {
		res.FieldErrors = appErr.FirstFieldErrors()
		p.logger.Warn("Сервер отклонил мутацию", zap.String("action", req.Action), zap.String("msg", appErr.Message))
	} else {
		p.logger.Error("Мутация не выполнена", zap.String("action", req.Action), zap.Error(err))
	}

	if req.Form != nil {
		req.Form.SetErrors(res.FieldErrors)
	}
	if p.notifier != nil {
		p.notifier.Failure(ctx, res.Message)
	}
	return res
}
