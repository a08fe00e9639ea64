package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
)

// Manager пишет/стирает запись сессии и оповещает подписчиков.
// Встаёт на место внешнего флоу авторизации из мобильного клиента:
// токен уже выдан бекендом, мы его только сохраняем.
type Manager struct {
	log *log.Logger
	kv  domain.KeyedStore
	ntf *Notifier
}

func NewManager(kv domain.KeyedStore, ntf *Notifier, logger *log.Logger) *Manager {
	return &Manager{kv: kv, ntf: ntf, log: logger}
}

// Save сохраняет токен и запись пользователя, затем публикует AuthLogin.
// Порядок записи важен: сначала userData, потом токен — резолвер считает
// сессию живой только при наличии токена.
func (m *Manager) Save(ctx context.Context, token string, u domain.SessionUser) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal userData: %w", err)
	}
	if err := m.kv.Set(ctx, domain.KeyUserData, string(b)); err != nil {
		return fmt.Errorf("set userData: %w", err)
	}
	if err := m.kv.Set(ctx, domain.KeyUserToken, token); err != nil {
		return fmt.Errorf("set userToken: %w", err)
	}

	id := IdentityOf(u)
	m.log.Printf("session saved, identity=%s", id)
	m.ntf.publish(ctx, domain.AuthEvent{Kind: domain.AuthLogin, Identity: id})
	return nil
}

// Clear стирает запись сессии и публикует AuthLogout.
// Персистентные favoritos_*/cart_* не трогаем: они переживают логаут.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.kv.Del(ctx, domain.KeyUserToken, domain.KeyUserData); err != nil {
		return fmt.Errorf("del session keys: %w", err)
	}
	m.log.Println("session cleared")
	m.ntf.publish(ctx, domain.AuthEvent{Kind: domain.AuthLogout, Identity: domain.IdentityAnonymous})
	return nil
}
