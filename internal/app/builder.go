package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/catalog"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/config"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/images"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/infra/kvstore/memory"
	pgstore "github.com/jonandervallejo/Ohana-App-sub000/internal/infra/kvstore/postgres"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/infra/kvstore/redisx"
	s3storage "github.com/jonandervallejo/Ohana-App-sub000/internal/infra/storage/s3"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/session"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/store/cart"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/store/favorites"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web"
)

type App struct {
	config *config.Config
	server *web.Server
	log    *log.Logger
	kv     domain.KeyedStore
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[agent] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	kvLog := log.New(base.Writer(), base.Prefix()+"[kvstore] ", base.Flags())
	s3Log := log.New(base.Writer(), base.Prefix()+"[s3] ", base.Flags())
	sessLog := log.New(base.Writer(), base.Prefix()+"[session] ", base.Flags())
	favLog := log.New(base.Writer(), base.Prefix()+"[favorites] ", base.Flags())
	cartLog := log.New(base.Writer(), base.Prefix()+"[cart] ", base.Flags())
	imgLog := log.New(base.Writer(), base.Prefix()+"[images] ", base.Flags())
	catLog := log.New(base.Writer(), base.Prefix()+"[catalog] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Printf("init keyed store (%s)", cfg.StoreBackend)
	kv, err := buildKV(ctx, cfg, kvLog)
	if err != nil {
		return nil, fmt.Errorf("failed init keyed store: %w", err)
	}
	if err := kv.Ping(ctx); err != nil {
		return nil, fmt.Errorf("keyed store not reachable: %w", err)
	}
	base.Println("keyed store is initialized")

	// Сессия и события логина/логаута
	notifier := session.NewNotifier()
	ids := session.NewResolver(kv, sessLog)
	mgr := session.NewManager(kv, notifier, sessLog)

	// Сторы; оба подписаны на смену сессии
	favs := favorites.New(kv, ids, favLog)
	crt := cart.New(kv, ids, cartLog)
	notifier.Subscribe(favs.OnAuthEvent)
	notifier.Subscribe(crt.OnAuthEvent)

	// поднимаем стартовое состояние под текущую сессию
	favs.Load(ctx)
	crt.RefreshLoginStatus(ctx)

	resolver := images.NewResolver(cfg.ImageOrigin)
	cat := catalog.New(cfg.APIBaseURL, catLog)

	deps := web.Deps{
		KV:        kv,
		Ids:       ids,
		Session:   mgr,
		Favorites: favs,
		Cart:      crt,
		Images:    resolver,
		Catalog:   cat,
	}

	if cfg.PrefetchImages {
		base.Println("init S3 image cache")
		s3cfg := s3storage.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
			PathStyle: cfg.S3PathStyle,
		}
		blobs, err := s3storage.New(ctx, s3cfg, s3Log)
		if err != nil {
			return nil, fmt.Errorf("failed init s3: %w", err)
		}
		deps.Blobs = blobs
		deps.Prefetch = images.NewPrefetcher(resolver, blobs, imgLog)
		base.Println("S3 image cache is initialized")
	}

	base.Println("init Server")
	server := web.New(serverLog, cfg, deps)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config: cfg,
		server: server,
		log:    base,
		kv:     kv,
	}, nil
}

func buildKV(ctx context.Context, cfg *config.Config, logger *log.Logger) (domain.KeyedStore, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		return redisx.New(redisx.Config{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: cfg.RedisPassword,
		}, logger), nil
	case config.BackendPostgres:
		return pgstore.NewPGStore(ctx, logger, cfg.GetDSN(), cfg.DBScheme)
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.kv.Close()

	return nil
}
