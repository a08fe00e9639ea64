package web

import (
	"github.com/jonandervallejo/Ohana-App-sub000/internal/catalog"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/images"
	s3storage "github.com/jonandervallejo/Ohana-App-sub000/internal/infra/storage/s3"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/session"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/store/cart"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/store/favorites"
)

type Deps struct {
	KV        domain.KeyedStore
	Ids       domain.IdentityResolver
	Session   *session.Manager
	Favorites *favorites.Store
	Cart      *cart.Store
	Images    *images.Resolver
	Catalog   *catalog.Client

	// nil, если префетч картинок выключен
	Prefetch *images.Prefetcher
	Blobs    *s3storage.Storage
}
