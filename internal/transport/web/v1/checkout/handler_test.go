package checkout

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/infra/kvstore/memory"
)

type fakeCart struct {
	lines   []domain.CartLine
	cleared int
}

func (f *fakeCart) Load(context.Context) []domain.CartLine { return f.lines }
func (f *fakeCart) Clear(context.Context)                  { f.cleared++ }

type fakeOrders struct {
	gotToken string
	gotItems []domain.OrderItem
	id       int64
	err      error
}

func (f *fakeOrders) CreateOrder(_ context.Context, token string, items []domain.OrderItem) (int64, error) {
	f.gotToken = token
	f.gotItems = items
	return f.id, f.err
}

func newHandler(c *fakeCart, o *fakeOrders, kv domain.KeyedStore) *Handler {
	return &Handler{Log: log.New(io.Discard, "", 0), Cart: c, Orders: o, KV: kv}
}

func doCheckout(h *Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/checkout", nil)
	rec := httptest.NewRecorder()
	h.Checkout(rec, req)
	return rec
}

func TestCheckoutOK(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	_ = kv.Set(ctx, domain.KeyUserToken, "tok-123")

	c := &fakeCart{lines: []domain.CartLine{
		{ProductID: 7, Size: "M", Color: "rojo", Quantity: 2},
		{ProductID: 8, Quantity: 1},
	}}
	o := &fakeOrders{id: 555}
	rec := doCheckout(newHandler(c, o, kv))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if o.gotToken != "tok-123" {
		t.Fatalf("token = %q", o.gotToken)
	}
	if len(o.gotItems) != 2 || o.gotItems[0].ProductID != 7 || o.gotItems[0].Quantity != 2 {
		t.Fatalf("items = %+v", o.gotItems)
	}
	if c.cleared != 1 {
		t.Fatalf("cleared = %d, want 1", c.cleared)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	kv := memory.New()
	c := &fakeCart{}
	o := &fakeOrders{}
	rec := doCheckout(newHandler(c, o, kv))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if o.gotItems != nil {
		t.Fatal("order attempted for empty cart")
	}
}

func TestCheckoutNoToken(t *testing.T) {
	kv := memory.New()
	c := &fakeCart{lines: []domain.CartLine{{ProductID: 7, Quantity: 1}}}
	o := &fakeOrders{}
	rec := doCheckout(newHandler(c, o, kv))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if c.cleared != 0 {
		t.Fatal("cart cleared without order")
	}
}

func TestCheckoutBackendFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	_ = kv.Set(ctx, domain.KeyUserToken, "tok")

	c := &fakeCart{lines: []domain.CartLine{{ProductID: 7, Quantity: 1}}}
	o := &fakeOrders{err: domain.ErrUnexpected}
	rec := doCheckout(newHandler(c, o, kv))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if c.cleared != 0 {
		t.Fatal("cart cleared after failed order")
	}
}
