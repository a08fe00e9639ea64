package redisx

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
)

// Store — KeyedStore поверх Redis. Значения пишем без TTL:
// это состояние пользователя, а не кэш.
type Store struct {
	rdb    *redis.Client
	logger *log.Logger
}

type Config struct {
	Addr     string
	DB       int
	Password string
}

func New(cfg Config, logger *log.Logger) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})
	return &Store{rdb: rdb, logger: logger}
}

var _ domain.KeyedStore = (*Store)(nil)

func (s *Store) Ping(ctx context.Context) error {
	err := s.rdb.Ping(ctx).Err()
	if err != nil {
		s.logger.Printf("PING failed: %v", err)
	} else {
		s.logger.Println("PING ok")
	}
	return err
}

func (s *Store) Close() {
	if s.rdb == nil {
		s.logger.Println("nothing to close")
		return
	}

	if err := s.rdb.Close(); err != nil {
		s.logger.Printf("error while closing: %v", err)
		return
	}

	s.logger.Println("closed")
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		s.logger.Printf("GET %q: not found", key)
		return "", false, nil
	}
	if err != nil {
		s.logger.Printf("GET %q: error: %v", key, err)
		return "", false, err
	}
	s.logger.Printf("GET %q: hit (%d bytes)", key, len(v))
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key string, val string) error {
	err := s.rdb.Set(ctx, key, val, 0).Err()
	if err != nil {
		s.logger.Printf("SET %q failed: %v", key, err)
	} else {
		s.logger.Printf("SET %q ok (%d bytes)", key, len(val))
	}
	return err
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	n, err := s.rdb.Del(ctx, keys...).Result()
	if err != nil {
		s.logger.Printf("DEL %v failed: %v", keys, err)
	} else {
		s.logger.Printf("DEL %v: deleted=%d", keys, n)
	}
	return err
}
