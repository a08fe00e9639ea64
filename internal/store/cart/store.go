package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/store/serial"
)

// Результат Add. Отдельный тип вместо голого bool: "нужен логин" и
// "хранилище не записало" — разные ситуации, вызывающий слой ветвится
// по ним по-разному (редирект на логин vs молча ехать дальше).
type AddResult int

const (
	Added AddResult = iota + 1
	// RequiresLogin — корзины у гостя нет, экран уводит на логин.
	RequiresLogin
	// Failed — память уже обновлена, но запись в хранилище не прошла.
	Failed
)

// Store владеет корзиной текущей авторизованной идентичности.
// У гостя корзины нет: все мутации при отсутствии сессии — no-op.
// Сохранённая корзина живёт под ключом аккаунта и переживает логаут.
type Store struct {
	log   *log.Logger
	kv    domain.KeyedStore
	ids   domain.IdentityResolver
	locks *serial.Keyed

	mu       sync.Mutex
	identity domain.IdentityKey
	loggedIn bool
	lines    []domain.CartLine
}

func New(kv domain.KeyedStore, ids domain.IdentityResolver, logger *log.Logger) *Store {
	return &Store{
		kv:    kv,
		ids:   ids,
		log:   logger,
		locks: serial.New(),
	}
}

// RefreshLoginStatus пересчитывает статус сессии. Логин — грузим корзину
// аккаунта; логаут — чистим только память, сохранённая корзина остаётся.
func (s *Store) RefreshLoginStatus(ctx context.Context) {
	identity := s.ids.Resolve(ctx)
	if identity == domain.IdentityAnonymous {
		s.mu.Lock()
		s.loggedIn = false
		s.identity = domain.IdentityAnonymous
		s.lines = nil
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.loggedIn = true
	s.identity = identity
	s.mu.Unlock()
	s.Load(ctx)
}

// OnAuthEvent — подписка на AuthNotifier вместо опроса по таймеру.
func (s *Store) OnAuthEvent(ctx context.Context, _ domain.AuthEvent) {
	s.RefreshLoginStatus(ctx)
}

func (s *Store) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// Lines — снимок корзины из памяти, без I/O.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLine(nil), s.lines...)
}

// Load перечитывает корзину текущей идентичности из хранилища.
// Без сессии ничего не читает и отдаёт пустую.
func (s *Store) Load(ctx context.Context) []domain.CartLine {
	s.mu.Lock()
	loggedIn, identity := s.loggedIn, s.identity
	s.mu.Unlock()
	if !loggedIn {
		return nil
	}

	lines := s.read(ctx, identity)
	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
	return append([]domain.CartLine(nil), lines...)
}

// Add кладёт товар в корзину. Позиции ключуются только по ProductID:
// повторный Add того же товара увеличивает количество на 1, первая вставка
// идёт с количеством 1 независимо от того, что пришло в line.Quantity.
// Верхнюю границу количества стор не проверяет — это делает вызывающий слой.
func (s *Store) Add(ctx context.Context, line domain.CartLine) AddResult {
	identity := s.ids.Resolve(ctx)
	if identity == domain.IdentityAnonymous {
		return RequiresLogin
	}

	unlock := s.locks.Lock(identity)
	defer unlock()

	lines := s.read(ctx, identity)
	found := false
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		line.Quantity = 1
		lines = append(lines, line)
	}

	err := s.persist(ctx, identity, lines)
	s.remember(identity, lines)
	if err != nil {
		return Failed
	}
	return Added
}

// Remove убирает позицию товара. No-op без сессии.
func (s *Store) Remove(ctx context.Context, p domain.ProductID) {
	identity := s.ids.Resolve(ctx)
	if identity == domain.IdentityAnonymous {
		return
	}

	unlock := s.locks.Lock(identity)
	defer unlock()

	lines := s.read(ctx, identity)
	next := lines[:0]
	for _, l := range lines {
		if l.ProductID == p {
			continue
		}
		next = append(next, l)
	}

	_ = s.persist(ctx, identity, next)
	s.remember(identity, next)
}

// UpdateQuantity перезаписывает количество позиции. No-op без сессии
// и при q < 1. Верхней границы здесь нет, см. комментарий к Add.
func (s *Store) UpdateQuantity(ctx context.Context, p domain.ProductID, q int) {
	if q < domain.MinQuantity {
		return
	}
	identity := s.ids.Resolve(ctx)
	if identity == domain.IdentityAnonymous {
		return
	}

	unlock := s.locks.Lock(identity)
	defer unlock()

	lines := s.read(ctx, identity)
	for i := range lines {
		if lines[i].ProductID == p {
			lines[i].Quantity = q
			break
		}
	}

	_ = s.persist(ctx, identity, lines)
	s.remember(identity, lines)
}

// Clear опустошает корзину. Идемпотентна, no-op без сессии.
func (s *Store) Clear(ctx context.Context) {
	identity := s.ids.Resolve(ctx)
	if identity == domain.IdentityAnonymous {
		return
	}

	unlock := s.locks.Lock(identity)
	defer unlock()

	empty := []domain.CartLine{}
	_ = s.persist(ctx, identity, empty)
	s.remember(identity, empty)
}

func (s *Store) read(ctx context.Context, identity domain.IdentityKey) []domain.CartLine {
	raw, ok, err := s.kv.Get(ctx, domain.KeyCart(identity))
	if err != nil {
		s.log.Printf("read cart for %s failed: %v", identity, err)
		return nil
	}
	if !ok {
		return nil
	}
	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.log.Printf("bad cart payload for %s: %v", identity, err)
		return nil
	}
	return lines
}

func (s *Store) persist(ctx context.Context, identity domain.IdentityKey, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	b, err := json.Marshal(lines)
	if err != nil {
		s.log.Printf("marshal cart for %s failed: %v", identity, err)
		return err
	}
	if err := s.kv.Set(ctx, domain.KeyCart(identity), string(b)); err != nil {
		s.log.Printf("persist cart for %s failed: %v", identity, err)
		return err
	}
	return nil
}

func (s *Store) remember(identity domain.IdentityKey, lines []domain.CartLine) {
	s.mu.Lock()
	s.identity = identity
	s.loggedIn = true
	s.lines = append([]domain.CartLine(nil), lines...)
	s.mu.Unlock()
}
