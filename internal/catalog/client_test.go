package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
)

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/productos" {
			t.Errorf("path = %q", r.URL.Path)
		}
		io.WriteString(w, `[{"id":1,"nombre":"camiseta","precio":"19.99","imagen":"/uploads/c.jpg","extra":"ignored"}]`)
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger())
	got, err := c.Products(context.Background())
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 || got[0].Name != "camiseta" {
		t.Fatalf("Products = %+v", got)
	}
}

func TestProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/productos/99" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger())
	_, err := c.Product(context.Background(), 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSearchEncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/productos/buscar" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "camisa roja" {
			t.Errorf("q = %q", got)
		}
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger())
	if _, err := c.Search(context.Background(), "camisa roja"); err != nil {
		t.Fatalf("Search: %v", err)
	}
}

func TestCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":3,"nombre":"vestidos"}]`)
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger())
	got, err := c.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(got) != 1 || got[0].Name != "vestidos" {
		t.Fatalf("Categories = %+v", got)
	}
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/pedidos" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		var body struct {
			Items []domain.OrderItem `json:"productos"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(body.Items) != 1 || body.Items[0].ProductID != 7 || body.Items[0].Quantity != 2 {
			t.Errorf("items = %+v", body.Items)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":555}`)
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger())
	id, err := c.CreateOrder(context.Background(), "tok-123", []domain.OrderItem{
		{ProductID: 7, Size: "M", Color: "rojo", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if id != 555 {
		t.Fatalf("order id = %d, want 555", id)
	}
}

func TestCreateOrderUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger())
	_, err := c.CreateOrder(context.Background(), "stale", nil)
	if !errors.Is(err, domain.ErrUnauth) {
		t.Fatalf("err = %v, want ErrUnauth", err)
	}
}
