package web

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/jonandervallejo/Ohana-App-sub000/internal/docs"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/mw"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1/cartapi"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1/checkout"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1/favorites"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1/health"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1/imageapi"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1/sess"
)

type handlers struct {
	health   *health.Handler
	sess     *sess.Handler
	fav      *favorites.Handler
	cart     *cartapi.Handler
	checkout *checkout.Handler
	img      *imageapi.Handler
}

func newRouter(h handlers, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /v1/healthz", h.health.Liveness)
	mux.HandleFunc("GET /v1/readyz", h.health.Readiness)

	// session
	mux.HandleFunc("GET /v1/session", h.sess.Whoami)
	mux.HandleFunc("POST /v1/session", limitBody(1<<20, h.sess.Login))
	mux.HandleFunc("DELETE /v1/session", h.sess.Logout)

	// favorites
	mux.HandleFunc("GET /v1/favorites", h.fav.List)
	mux.HandleFunc("GET /v1/favorites/contains", h.fav.Contains)
	mux.HandleFunc("POST /v1/favorites/toggle", limitBody(1<<20, h.fav.Toggle))

	// cart
	mux.HandleFunc("GET /v1/cart", h.cart.Get)
	mux.HandleFunc("POST /v1/cart", limitBody(1<<20, h.cart.Add))
	mux.HandleFunc("PUT /v1/cart/quantity", limitBody(1<<20, h.cart.UpdateQuantity))
	mux.HandleFunc("DELETE /v1/cart", h.cart.Remove)
	mux.HandleFunc("POST /v1/cart/clear", h.cart.Clear)

	// checkout
	mux.HandleFunc("POST /v1/checkout", h.checkout.Checkout)

	// images
	mux.HandleFunc("GET /v1/images/resolve", h.img.Resolve)
	mux.HandleFunc("POST /v1/images/mark", limitBody(1<<20, h.img.Mark))
	mux.HandleFunc("POST /v1/images/reset", h.img.Reset)
	mux.HandleFunc("POST /v1/images/prefetch", limitBody(1<<20, h.img.DoPrefetch))
	mux.HandleFunc("GET /v1/images/blob", h.img.Blob)

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
