package favorites

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/store/serial"
)

// Store владеет набором избранных товаров текущей идентичности.
// Избранное есть и у гостя (ключ favoritos_anonymous), и у каждого
// аккаунта; на логине гостевой набор вливается в аккаунтный.
//
// Ошибки хранилища наружу не отдаём: избранное некритично, любой сбой
// деградирует в пустой набор или no-op (логируем и едем дальше).
type Store struct {
	log   *log.Logger
	kv    domain.KeyedStore
	ids   domain.IdentityResolver
	locks *serial.Keyed

	mu       sync.Mutex
	identity domain.IdentityKey
	list     []domain.ProductID
	set      map[domain.ProductID]struct{}
}

func New(kv domain.KeyedStore, ids domain.IdentityResolver, logger *log.Logger) *Store {
	return &Store{
		kv:    kv,
		ids:   ids,
		log:   logger,
		locks: serial.New(),
		set:   make(map[domain.ProductID]struct{}),
	}
}

// Load перечитывает избранное текущей идентичности.
func (s *Store) Load(ctx context.Context) []domain.ProductID {
	return s.LoadAs(ctx, s.ids.Resolve(ctx))
}

// LoadAs перечитывает избранное указанной идентичности и делает её текущей.
func (s *Store) LoadAs(ctx context.Context, identity domain.IdentityKey) []domain.ProductID {
	ids := s.read(ctx, identity)
	s.remember(identity, ids)
	return ids
}

// IsFavorite — проверка по памяти, без I/O.
func (s *Store) IsFavorite(p domain.ProductID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[p]
	return ok
}

// Items — упорядоченный снимок избранного из памяти, без I/O.
func (s *Store) Items() []domain.ProductID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ProductID(nil), s.list...)
}

// Toggle переключает товар в избранном и возвращает, есть ли он там теперь
// (true — добавили, false — убрали). Идентичность пересчитывается на каждом
// вызове: сессия могла смениться с последнего Load. Работает как
// read-modify-write против последней сохранённой версии, под замком
// идентичности — параллельный Toggle с другого экрана не теряется.
func (s *Store) Toggle(ctx context.Context, p domain.ProductID) bool {
	identity := s.ids.Resolve(ctx)

	unlock := s.locks.Lock(identity)
	defer unlock()

	ids := s.read(ctx, identity)
	next := make([]domain.ProductID, 0, len(ids)+1)
	present := false
	for _, id := range ids {
		if id == p {
			present = true
			continue
		}
		next = append(next, id)
	}
	if !present {
		next = append(next, p)
	}

	s.persist(ctx, identity, next)
	s.remember(identity, next)
	return !present
}

// MergeOnLogin вливает гостевое избранное в набор новой идентичности:
// объединение без дублей, сохраняется под ключом аккаунта. Гостевую запись
// не трогаем — после логаута избранное гостя должно остаться на месте.
// Переключение между двумя живыми аккаунтами слиянием не считается.
func (s *Store) MergeOnLogin(ctx context.Context, newIdentity domain.IdentityKey) {
	if newIdentity == "" || newIdentity == domain.IdentityAnonymous {
		return
	}

	s.mu.Lock()
	prev := s.identity
	s.mu.Unlock()
	if prev != "" && prev != domain.IdentityAnonymous {
		s.LoadAs(ctx, newIdentity)
		return
	}

	unlock := s.locks.Lock(newIdentity)
	defer unlock()

	existing := s.read(ctx, newIdentity)
	anon := s.read(ctx, domain.IdentityAnonymous)
	union := dedupe(append(existing, anon...))

	s.persist(ctx, newIdentity, union)
	s.remember(newIdentity, union)
}

// OnAuthEvent — подписка на AuthNotifier: логин сливает гостевое избранное,
// логаут возвращает стор к гостевому набору.
func (s *Store) OnAuthEvent(ctx context.Context, ev domain.AuthEvent) {
	switch ev.Kind {
	case domain.AuthLogin:
		s.MergeOnLogin(ctx, ev.Identity)
	case domain.AuthLogout:
		s.LoadAs(ctx, domain.IdentityAnonymous)
	}
}

func (s *Store) read(ctx context.Context, identity domain.IdentityKey) []domain.ProductID {
	raw, ok, err := s.kv.Get(ctx, domain.KeyFavorites(identity))
	if err != nil {
		s.log.Printf("read favorites for %s failed: %v", identity, err)
		return nil
	}
	if !ok {
		return nil
	}
	var ids []domain.ProductID
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.log.Printf("bad favorites payload for %s: %v", identity, err)
		return nil
	}
	return dedupe(ids)
}

func (s *Store) persist(ctx context.Context, identity domain.IdentityKey, ids []domain.ProductID) {
	if ids == nil {
		ids = []domain.ProductID{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		s.log.Printf("marshal favorites for %s failed: %v", identity, err)
		return
	}
	if err := s.kv.Set(ctx, domain.KeyFavorites(identity), string(b)); err != nil {
		// память уже обновлена, диск догонит на следующей мутации
		s.log.Printf("persist favorites for %s failed: %v", identity, err)
	}
}

func (s *Store) remember(identity domain.IdentityKey, ids []domain.ProductID) {
	set := make(map[domain.ProductID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	s.mu.Lock()
	s.identity = identity
	s.list = append([]domain.ProductID(nil), ids...)
	s.set = set
	s.mu.Unlock()
}

func dedupe(ids []domain.ProductID) []domain.ProductID {
	seen := make(map[domain.ProductID]struct{}, len(ids))
	out := make([]domain.ProductID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
