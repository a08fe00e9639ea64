package domain

import "context"

type AuthEventKind int

const (
	AuthLogin AuthEventKind = iota + 1
	AuthLogout
)

// Событие смены сессии. Identity — новая идентичность после события
// (для logout всегда anonymous).
type AuthEvent struct {
	Kind     AuthEventKind
	Identity IdentityKey
}

// AuthNotifier — явный pub/sub вместо опроса статуса логина по таймеру.
// Колбэки вызываются синхронно в порядке подписки.
type AuthNotifier interface {
	Subscribe(fn func(ctx context.Context, ev AuthEvent))
}

// IdentityResolver выводит текущую идентичность из состояния сессии.
// Никогда не возвращает ошибку: любой сбой деградирует в anonymous.
type IdentityResolver interface {
	Resolve(ctx context.Context) IdentityKey
}
