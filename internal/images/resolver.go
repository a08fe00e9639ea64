package images

import (
	"strings"
	"sync"
)

// Resolver нормализует сырые пути картинок с бекенда в абсолютные URL
// и помнит, какие URL в этом процессе уже грузились или падали.
// Картинки на бекенде регулярно битые: кэш нужен только затем, чтобы
// не дёргать сеть за URL, про который уже известно, что он не грузится.
//
// Инстанс создаётся в composition root и передаётся явно —
// не пакетный глобал, чтобы тесты могли держать изолированные копии.
type Resolver struct {
	origin string

	mu     sync.Mutex
	valid  map[string]struct{}
	failed map[string]struct{}
}

func NewResolver(origin string) *Resolver {
	return &Resolver{
		origin: strings.TrimRight(strings.TrimSpace(origin), "/"),
		valid:  make(map[string]struct{}),
		failed: make(map[string]struct{}),
	}
}

// Normalize приводит сырой путь к абсолютному URL.
// Пустая строка на выходе означает "показывай плейсхолдер".
func (r *Resolver) Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if r.IsFailed(s) {
		return ""
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	// протокол-относительный //host/path
	if strings.HasPrefix(s, "//") {
		return "https:" + s
	}
	// серверный путь: ровно один ведущий слеш
	return r.origin + "/" + strings.TrimLeft(s, "/")
}

// MarkValid помечает URL рабочим. URL не может числиться одновременно
// рабочим и упавшим: последняя пометка выигрывает.
func (r *Resolver) MarkValid(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.failed, url)
	r.valid[url] = struct{}{}
}

// MarkFailed помечает URL упавшим; Normalize для него будет отдавать "".
func (r *Resolver) MarkFailed(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.valid, url)
	r.failed[url] = struct{}{}
}

func (r *Resolver) IsValid(url string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.valid[url]
	return ok
}

func (r *Resolver) IsFailed(url string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.failed[url]
	return ok
}

// Reset сбрасывает оба набора. Вызывается при уходе с экрана и при retry,
// так кэш ограничен одним визитом экрана.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.valid = make(map[string]struct{})
	r.failed = make(map[string]struct{})
}
