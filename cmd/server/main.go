package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/creatorbase/influencer-api/internal/api"
	"github.com/creatorbase/influencer-api/internal/infrastructure/config"
	mongodb "github.com/creatorbase/influencer-api/internal/infrastructure/db/mongo"
	redisdb "github.com/creatorbase/influencer-api/internal/infrastructure/db/redis"
	"github.com/creatorbase/influencer-api/internal/infrastructure/provider"
	"github.com/creatorbase/influencer-api/internal/infrastructure/scheduler"
	"github.com/creatorbase/influencer-api/pkg/logger"
)

// @title CreatorBase Influencer API
// @version 1.0
// @description REST API for the influencer marketing dashboard: roles and
// @description portals, brand and roster management, onboarding, and the
// @description tiered data sync against the external social-data provider.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Env:     cfg.Env,
		Service: "influencer-api",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	providerClient := provider.New(cfg.Provider)

	e, syncService := api.NewRouter(db, rdb, providerClient, cfg, log)

	sched := scheduler.New(syncService, cfg.Sync, log)
	if err := sched.Start(cfg.Sync.RunHourUTC); err != nil {
		log.Fatal().Err(err).Msg("scheduler start failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
