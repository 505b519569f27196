package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumiere-cosmetics/storefront-api/internal/api"
	"github.com/lumiere-cosmetics/storefront-api/internal/api/handler"
	"github.com/lumiere-cosmetics/storefront-api/internal/core/service"
	"github.com/lumiere-cosmetics/storefront-api/internal/infrastructure/config"
	mongodb "github.com/lumiere-cosmetics/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/lumiere-cosmetics/storefront-api/internal/infrastructure/db/redis"
	"github.com/lumiere-cosmetics/storefront-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	credentialRepo := mongodb.NewCredentialRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	if err := credentialRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create admin indexes")
	}
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create product indexes")
	}

	// --- Redis (login throttle, optional) ---
	var throttle service.LoginThrottle
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		// the throttle is an optimization, not an authorization gate
		log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
	} else {
		throttle = redisdb.NewLoginThrottle(rdb, 0)
		defer func() { _ = rdb.Close() }()
	}

	// --- Services ---
	authService := service.NewAuthService(credentialRepo, throttle, service.AuthConfig{
		JWTSecret:            cfg.JWTSecret,
		TokenTTL:             cfg.TokenTTL,
		DefaultAdminUsername: cfg.Admin.Username,
		DefaultAdminPassword: cfg.Admin.Password,
	}, log)
	productService := service.NewProductService(productRepo, log)

	if err := authService.BootstrapDefaultAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap default administrator")
	}

	// --- HTTP ---
	e := api.NewRouter(authService, productService, handler.NewHealthHandler(db, rdb), log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting storefront api")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
