package session

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
)

// Resolver выводит текущую идентичность из записей сессии (userToken/userData)
// в локальном хранилище. Любой сбой — отсутствие записей, битый JSON,
// ошибка хранилища — деградирует в anonymous, наружу ошибки не отдаём.
type Resolver struct {
	log *log.Logger
	kv  domain.KeyedStore
}

func NewResolver(kv domain.KeyedStore, logger *log.Logger) *Resolver {
	return &Resolver{kv: kv, log: logger}
}

var _ domain.IdentityResolver = (*Resolver)(nil)

func (r *Resolver) Resolve(ctx context.Context) domain.IdentityKey {
	token, ok, err := r.kv.Get(ctx, domain.KeyUserToken)
	if err != nil {
		r.log.Printf("resolve: get token failed: %v", err)
		return domain.IdentityAnonymous
	}
	if !ok || strings.TrimSpace(token) == "" {
		return domain.IdentityAnonymous
	}
	if tokenExpired(token) {
		return domain.IdentityAnonymous
	}

	raw, ok, err := r.kv.Get(ctx, domain.KeyUserData)
	if err != nil {
		r.log.Printf("resolve: get userData failed: %v", err)
		return domain.IdentityAnonymous
	}
	if !ok {
		return domain.IdentityAnonymous
	}

	var u domain.SessionUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		r.log.Printf("resolve: bad userData: %v", err)
		return domain.IdentityAnonymous
	}
	return IdentityOf(u)
}

// IdentityOf: email предпочтительнее, затем числовой id строкой, иначе anonymous.
func IdentityOf(u domain.SessionUser) domain.IdentityKey {
	if e := strings.TrimSpace(u.Email); e != "" {
		return e
	}
	if u.ID > 0 {
		return strconv.FormatInt(u.ID, 10)
	}
	return domain.IdentityAnonymous
}

// tokenExpired: бекенд выдаёт JWT; если токен разбирается и exp в прошлом —
// сессии больше нет. Непрозрачные (не-JWT) токены принимаем как есть,
// подпись здесь не проверяем — это делает бекенд.
func tokenExpired(raw string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
