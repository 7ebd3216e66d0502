package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joaaoazul/siganext/internal/api"
	"github.com/joaaoazul/siganext/internal/core/service"
	"github.com/joaaoazul/siganext/internal/infrastructure/config"
	mongorepo "github.com/joaaoazul/siganext/internal/infrastructure/db/mongo"
	redisrepo "github.com/joaaoazul/siganext/internal/infrastructure/db/redis"
	"github.com/joaaoazul/siganext/internal/infrastructure/queue"
	"github.com/joaaoazul/siganext/internal/jobs"
	"github.com/joaaoazul/siganext/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}

	rdb, err := redisrepo.Connect(ctx, redisrepo.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// Async audit writer: fire-and-forget, drains on shutdown.
	audit := queue.NewAuditWriter(0, mongorepo.NewAuditRepository(db), logger.Component("audit"))
	audit.Start(ctx)

	// Hourly invite expiry sweep.
	inviteService := service.NewInviteService(mongorepo.NewInviteRepository(db), logger.Component("jobs"))
	expiry := jobs.StartInviteExpiry(ctx, inviteService, logger.Component("jobs"))
	defer expiry.Stop()

	e := api.NewRouter(ctx, mongoClient, db, rdb, cfg, log, audit)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
