package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/config"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1/cartapi"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1/checkout"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1/favorites"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1/health"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1/imageapi"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1/sess"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, d Deps) *Server {
	sub := func(name string) *log.Logger {
		return log.New(logger.Writer(), logger.Prefix()+"["+name+"] ", logger.Flags())
	}

	hh := &health.Handler{Log: sub("health"), Store: d.KV}
	if d.Blobs != nil {
		hh.Blobs = d.Blobs
	}

	sh := &sess.Handler{Log: sub("session"), Session: d.Session, Ids: d.Ids}
	fh := &favorites.Handler{Log: sub("favorites"), Favs: d.Favorites}
	ch := &cartapi.Handler{Log: sub("cart"), Cart: d.Cart}
	oh := &checkout.Handler{Log: sub("checkout"), Cart: d.Cart, Orders: d.Catalog, KV: d.KV}

	ih := &imageapi.Handler{Log: sub("images"), Images: d.Images}
	if d.Prefetch != nil {
		ih.Prefetch = d.Prefetch
	}
	if d.Blobs != nil {
		ih.Blobs = d.Blobs
	}

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(handlers{health: hh, sess: sh, fav: fh, cart: ch, checkout: oh, img: ih}, logger),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
