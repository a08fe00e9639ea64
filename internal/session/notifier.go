package session

import (
	"context"
	"sync"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
)

// Notifier — синхронный pub/sub событий логина/логаута.
// Подписчики вызываются в порядке подписки, в горутине публикующего.
type Notifier struct {
	mu   sync.Mutex
	subs []func(ctx context.Context, ev domain.AuthEvent)
}

func NewNotifier() *Notifier { return &Notifier{} }

var _ domain.AuthNotifier = (*Notifier)(nil)

func (n *Notifier) Subscribe(fn func(ctx context.Context, ev domain.AuthEvent)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

func (n *Notifier) publish(ctx context.Context, ev domain.AuthEvent) {
	n.mu.Lock()
	subs := make([]func(ctx context.Context, ev domain.AuthEvent), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, fn := range subs {
		fn(ctx, ev)
	}
}
