package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
)

var _ domain.KeyedStore = (*PGStore)(nil)

func (s *PGStore) table() string {
	return fmt.Sprintf("%s.client_state", s.schema)
}

func (s *PGStore) Get(ctx context.Context, key string) (string, bool, error) {
	q := s.qb().Select("v").
		From(s.table()).
		Where(sq.Eq{"k": key})

	sqlStr, args, _ := q.ToSql()
	s.logSQL("Get", sqlStr, args)

	start := time.Now()
	row := s.pool.QueryRow(ctx, sqlStr, args...)
	var v string
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		s.logger.Printf("Get scan error after %s: %v", time.Since(start), err)
		return "", false, err
	}
	s.logger.Printf("Get ok in %s k=%s", time.Since(start), key)
	return v, true, nil
}

func (s *PGStore) Set(ctx context.Context, key string, val string) error {
	q := s.qb().Insert(s.table()).
		Columns("k", "v").
		Values(key, val).
		Suffix("ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v, updated_at = now()")

	sqlStr, args, _ := q.ToSql()
	s.logSQL("Set", sqlStr, args)

	start := time.Now()
	if _, err := s.pool.Exec(ctx, sqlStr, args...); err != nil {
		s.logger.Printf("Set error after %s: %v", time.Since(start), err)
		return err
	}
	s.logger.Printf("Set ok in %s k=%s", time.Since(start), key)
	return nil
}

func (s *PGStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	q := s.qb().Delete(s.table()).
		Where(sq.Eq{"k": keys})

	sqlStr, args, _ := q.ToSql()
	s.logSQL("Del", sqlStr, args)

	start := time.Now()
	tag, err := s.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		s.logger.Printf("Del error after %s: %v", time.Since(start), err)
		return err
	}
	s.logger.Printf("Del ok in %s deleted=%d", time.Since(start), tag.RowsAffected())
	return nil
}
