package serial

import "sync"

// Keyed выдаёт мьютекс на строковый ключ: мутации одной идентичности
// сериализуются, разные идентичности друг другу не мешают.
// Ключей конечное число (идентичности за время жизни процесса),
// поэтому мьютексы не освобождаем.
type Keyed struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func New() *Keyed {
	return &Keyed{m: make(map[string]*sync.Mutex)}
}

// Lock блокирует ключ и возвращает функцию разблокировки.
func (k *Keyed) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.m[key]
	if !ok {
		l = &sync.Mutex{}
		k.m[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
