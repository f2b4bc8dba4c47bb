package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/appointly/identity-service/internal/api"
	"github.com/appointly/identity-service/internal/core/auth"
	"github.com/appointly/identity-service/internal/core/service"
	"github.com/appointly/identity-service/internal/infrastructure/config"
	mongodb "github.com/appointly/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/appointly/identity-service/internal/infrastructure/db/redis"
	"github.com/appointly/identity-service/internal/infrastructure/queue"
	"github.com/appointly/identity-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Local development convenience; absent .env is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Core components ---
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	denylist := redisdb.NewDenylist(rdb)

	identityRepo := mongodb.NewIdentityRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	auditTrail := service.NewAuditTrail(auditRepo, log)
	dispatcher := queue.NewDispatcher(0, auditTrail, log)
	dispatcher.Start(ctx)

	identityService := service.NewIdentityService(identityRepo, hasher, log)
	authService := service.NewAuthService(identityRepo, hasher, tokens, denylist, dispatcher, log)

	if err := identityService.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Auth:     authService,
		Identity: identityService,
		Tokens:   tokens,
		Denylist: denylist,
		Audit:    dispatcher,
		Mongo:    db,
		Redis:    rdb,
		Log:      log,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("identity service listening")
	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
