package session

import (
	"context"
	"testing"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/infra/kvstore/memory"
)

func TestSavePublishesLogin(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	ntf := NewNotifier()

	var events []domain.AuthEvent
	ntf.Subscribe(func(_ context.Context, ev domain.AuthEvent) {
		events = append(events, ev)
	})

	m := NewManager(kv, ntf, testLogger())
	err := m.Save(ctx, "opaque-token", domain.SessionUser{ID: 7, Email: "a@b.com"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if len(events) != 1 || events[0].Kind != domain.AuthLogin || events[0].Identity != "a@b.com" {
		t.Fatalf("events = %+v, want one AuthLogin for a@b.com", events)
	}

	if tok, ok, _ := kv.Get(ctx, domain.KeyUserToken); !ok || tok != "opaque-token" {
		t.Fatalf("userToken = %q, %v", tok, ok)
	}
	if _, ok, _ := kv.Get(ctx, domain.KeyUserData); !ok {
		t.Fatal("userData not written")
	}
}

func TestClearPublishesLogoutAndKeepsState(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	ntf := NewNotifier()
	m := NewManager(kv, ntf, testLogger())

	if err := m.Save(ctx, "opaque", domain.SessionUser{Email: "a@b.com"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// избранное и корзина переживают логаут
	_ = kv.Set(ctx, domain.KeyFavorites("a@b.com"), "[1,2]")
	_ = kv.Set(ctx, domain.KeyCart("a@b.com"), `[{"id":7,"cantidad":1}]`)

	var events []domain.AuthEvent
	ntf.Subscribe(func(_ context.Context, ev domain.AuthEvent) {
		events = append(events, ev)
	})

	if err := m.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if len(events) != 1 || events[0].Kind != domain.AuthLogout || events[0].Identity != domain.IdentityAnonymous {
		t.Fatalf("events = %+v, want one AuthLogout", events)
	}
	if _, ok, _ := kv.Get(ctx, domain.KeyUserToken); ok {
		t.Fatal("userToken survived Clear")
	}
	if _, ok, _ := kv.Get(ctx, domain.KeyUserData); ok {
		t.Fatal("userData survived Clear")
	}
	if v, ok, _ := kv.Get(ctx, domain.KeyFavorites("a@b.com")); !ok || v != "[1,2]" {
		t.Fatalf("favorites touched by Clear: %q, %v", v, ok)
	}
	if _, ok, _ := kv.Get(ctx, domain.KeyCart("a@b.com")); !ok {
		t.Fatal("cart touched by Clear")
	}
}

func TestSaveThenResolveRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	m := NewManager(kv, NewNotifier(), testLogger())
	r := NewResolver(kv, testLogger())

	if err := m.Save(ctx, "opaque", domain.SessionUser{ID: 42}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := r.Resolve(ctx); got != "42" {
		t.Fatalf("Resolve = %q, want 42", got)
	}

	if err := m.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := r.Resolve(ctx); got != domain.IdentityAnonymous {
		t.Fatalf("Resolve after Clear = %q, want anonymous", got)
	}
}

func TestSubscribersCalledInOrder(t *testing.T) {
	ntf := NewNotifier()
	var order []int
	ntf.Subscribe(func(context.Context, domain.AuthEvent) { order = append(order, 1) })
	ntf.Subscribe(func(context.Context, domain.AuthEvent) { order = append(order, 2) })

	ntf.publish(context.Background(), domain.AuthEvent{Kind: domain.AuthLogin})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("call order = %v, want [1 2]", order)
	}
}
