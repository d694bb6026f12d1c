package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/teamsite/content-api/internal/api"
	"github.com/teamsite/content-api/internal/core/ports"
	"github.com/teamsite/content-api/internal/core/service"
	"github.com/teamsite/content-api/internal/infrastructure/assets"
	"github.com/teamsite/content-api/internal/infrastructure/config"
	"github.com/teamsite/content-api/internal/infrastructure/db/mongo"
	infraredis "github.com/teamsite/content-api/internal/infrastructure/db/redis"
	"github.com/teamsite/content-api/internal/infrastructure/imaging"
	"github.com/teamsite/content-api/internal/infrastructure/queue"
	"github.com/teamsite/content-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	recordRepo := mongo.NewRecordRepository(db)
	localeRepo := mongo.NewLocaleRepository(db)
	if err := recordRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// The cache layer is optional; without REDIS_ADDR the services run
	// straight against MongoDB.
	var rdb *goredis.Client
	var cache ports.ListCache
	if cfg.Redis.Addr != "" {
		rdb, err = infraredis.Connect(ctx, infraredis.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		cache = infraredis.NewListCache(rdb, cfg.Cache.TTL)
	}

	// The asset directory is owned by exactly one process; the flock guards
	// against a second instance sweeping assets mid-write.
	store, err := assets.Open(cfg.AssetDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.AssetDir).Msg("asset store unavailable")
	}
	defer store.Close()

	gate := service.NewAuthGate(cfg.APIToken)
	reconcileSvc := service.NewReconcileService(recordRepo, store, log)
	reconciler := queue.NewReconciler(reconcileSvc, log)
	reconciler.Start(ctx)
	// Sweep leftovers from a previous unclean shutdown.
	reconciler.Kick()

	recordSvc := service.NewRecordService(gate, recordRepo, localeRepo, store, imaging.NewCodec(), log).
		WithReconcileTrigger(reconciler)
	localeSvc := service.NewLocaleService(localeRepo, log)
	if cache != nil {
		recordSvc = recordSvc.WithCache(cache)
		localeSvc = localeSvc.WithCache(cache)
	}

	e := api.NewRouter(api.RouterDeps{
		Records: recordSvc,
		Locales: localeSvc,
		Gate:    gate,
		Assets:  store,
		Mongo:   db,
		Redis:   rdb,
		Logger:  log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("content api listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("content api stopped")
}
