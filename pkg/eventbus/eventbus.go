package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event - любое событие консоли (тост, обновление экрана).
type Event interface {
	Name() string
}

type Listener func(ctx context.Context, event Event) error

// Bus - шина событий. Publish вызывает слушателей асинхронно, PublishSync - по очереди.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	logger    *zap.Logger
	timeout   time.Duration
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger.Named("eventbus"),
		timeout:   30 * time.Second,
	}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

func (b *Bus) snapshot(eventName string) []Listener {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ls := b.listeners[eventName]
	out := make([]Listener, len(ls))
	copy(out, ls)
	return out
}

func (b *Bus) Publish(ctx context.Context, event Event) {
	for _, listener := range b.snapshot(event.Name()) {
		go func(l Listener) {
			// отвязываемся от контекста запроса, но не даём слушателю висеть вечно
			ctxWithTimeout, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
			defer cancel()
			b.run(ctxWithTimeout, l, event)
		}(listener)
	}
}

func (b *Bus) PublishSync(ctx context.Context, event Event) {
	for _, l := range b.snapshot(event.Name()) {
		b.run(ctx, l, event)
	}
}

func (b *Bus) run(ctx context.Context, l Listener, event Event) {
	if err := l(ctx, event); err != nil {
		b.logger.Error("Ошибка в обработчике события",
			zap.String("event", event.Name()),
			zap.Error(err),
		)
	}
}
