package favorites

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
)

type fakeFavs struct {
	ids     []domain.ProductID
	toggled []domain.ProductID
	after   bool
}

func (f *fakeFavs) Load(context.Context) []domain.ProductID { return f.ids }
func (f *fakeFavs) IsFavorite(p domain.ProductID) bool {
	for _, id := range f.ids {
		if id == p {
			return true
		}
	}
	return false
}
func (f *fakeFavs) Toggle(_ context.Context, p domain.ProductID) bool {
	f.toggled = append(f.toggled, p)
	return f.after
}

func newHandler(f *fakeFavs) *Handler {
	return &Handler{Log: log.New(io.Discard, "", 0), Favs: f}
}

func TestList(t *testing.T) {
	h := newHandler(&fakeFavs{ids: []domain.ProductID{1, 2, 3}})
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/v1/favorites", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "[1,2,3]") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestToggle(t *testing.T) {
	f := &fakeFavs{after: true}
	h := newHandler(f)
	req := httptest.NewRequest(http.MethodPost, "/v1/favorites/toggle", strings.NewReader(`{"id":7}`))
	rec := httptest.NewRecorder()
	h.Toggle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(f.toggled) != 1 || f.toggled[0] != 7 {
		t.Fatalf("toggled = %v", f.toggled)
	}
	if !strings.Contains(rec.Body.String(), `"favorite":true`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestToggleBadInput(t *testing.T) {
	for _, body := range []string{`{broken`, `{"id":0}`} {
		f := &fakeFavs{}
		h := newHandler(f)
		req := httptest.NewRequest(http.MethodPost, "/v1/favorites/toggle", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Toggle(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rec.Code)
		}
		if len(f.toggled) != 0 {
			t.Fatalf("body %q mutated store", body)
		}
	}
}

func TestContains(t *testing.T) {
	h := newHandler(&fakeFavs{ids: []domain.ProductID{7}})

	rec := httptest.NewRecorder()
	h.Contains(rec, httptest.NewRequest(http.MethodGet, "/v1/favorites/contains?id=7", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"favorite":true`) {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.Contains(rec, httptest.NewRequest(http.MethodGet, "/v1/favorites/contains?id=8", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"favorite":false`) {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.Contains(rec, httptest.NewRequest(http.MethodGet, "/v1/favorites/contains?id=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status = %d", rec.Code)
	}
}
