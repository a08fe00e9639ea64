package domain

import (
	"context"
	"io"
)

// KeyedStore — минимальный строковый k/v контракт локального хранилища.
// Реализации — Redis, Postgres или память (для тестов/offline).
// Атомарность гарантируется только на уровне одного ключа.
type KeyedStore interface {
	// Get возвращает значение и флаг наличия ключа.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, val string) error
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close()
}

// BlobStore — куда префетчер складывает скачанные картинки товаров.
type BlobStore interface {
	Put(ctx context.Context, r io.Reader, contentType string) (storageKey string, size int64, err error)
	Delete(ctx context.Context, storageKey string) error
}
