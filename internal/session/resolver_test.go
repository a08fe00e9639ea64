package session

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/infra/kvstore/memory"
)

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	raw, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestResolveNoToken(t *testing.T) {
	kv := memory.New()
	r := NewResolver(kv, testLogger())
	if got := r.Resolve(context.Background()); got != domain.IdentityAnonymous {
		t.Fatalf("Resolve = %q, want anonymous", got)
	}
}

func TestResolveBlankToken(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	_ = kv.Set(ctx, domain.KeyUserToken, "   ")
	r := NewResolver(kv, testLogger())
	if got := r.Resolve(ctx); got != domain.IdentityAnonymous {
		t.Fatalf("Resolve = %q, want anonymous", got)
	}
}

func TestResolveExpiredJWT(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	_ = kv.Set(ctx, domain.KeyUserToken, signedToken(t, time.Now().Add(-time.Hour)))
	_ = kv.Set(ctx, domain.KeyUserData, `{"id":1,"email":"a@b.com"}`)
	r := NewResolver(kv, testLogger())
	if got := r.Resolve(ctx); got != domain.IdentityAnonymous {
		t.Fatalf("Resolve = %q, want anonymous for expired token", got)
	}
}

func TestResolveOpaqueTokenAccepted(t *testing.T) {
	// не-JWT токены бекенда принимаем как есть
	ctx := context.Background()
	kv := memory.New()
	_ = kv.Set(ctx, domain.KeyUserToken, "opaque-session-token")
	_ = kv.Set(ctx, domain.KeyUserData, `{"id":1,"email":"a@b.com"}`)
	r := NewResolver(kv, testLogger())
	if got := r.Resolve(ctx); got != "a@b.com" {
		t.Fatalf("Resolve = %q, want a@b.com", got)
	}
}

func TestResolveValidJWT(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	_ = kv.Set(ctx, domain.KeyUserToken, signedToken(t, time.Now().Add(time.Hour)))
	_ = kv.Set(ctx, domain.KeyUserData, `{"id":7,"email":"a@b.com","nombre":"Ana"}`)
	r := NewResolver(kv, testLogger())
	if got := r.Resolve(ctx); got != "a@b.com" {
		t.Fatalf("Resolve = %q, want a@b.com", got)
	}
}

func TestResolveBadUserData(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	_ = kv.Set(ctx, domain.KeyUserToken, "opaque")
	_ = kv.Set(ctx, domain.KeyUserData, "{broken")
	r := NewResolver(kv, testLogger())
	if got := r.Resolve(ctx); got != domain.IdentityAnonymous {
		t.Fatalf("Resolve = %q, want anonymous for bad userData", got)
	}
}

func TestResolveTokenWithoutUserData(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	_ = kv.Set(ctx, domain.KeyUserToken, "opaque")
	r := NewResolver(kv, testLogger())
	if got := r.Resolve(ctx); got != domain.IdentityAnonymous {
		t.Fatalf("Resolve = %q, want anonymous without userData", got)
	}
}

func TestIdentityOf(t *testing.T) {
	cases := []struct {
		name string
		u    domain.SessionUser
		want domain.IdentityKey
	}{
		{"email wins", domain.SessionUser{ID: 7, Email: "a@b.com"}, "a@b.com"},
		{"email trimmed", domain.SessionUser{Email: "  a@b.com  "}, "a@b.com"},
		{"numeric id fallback", domain.SessionUser{ID: 42}, "42"},
		{"zero id", domain.SessionUser{}, domain.IdentityAnonymous},
		{"negative id", domain.SessionUser{ID: -1}, domain.IdentityAnonymous},
		{"blank email falls to id", domain.SessionUser{ID: 9, Email: "   "}, "9"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IdentityOf(tc.u); got != tc.want {
				t.Fatalf("IdentityOf(%+v) = %q, want %q", tc.u, got, tc.want)
			}
		})
	}
}
