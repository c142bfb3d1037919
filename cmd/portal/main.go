// @title        CRM Portal API
// @version      1.0
// @description  Backend-for-frontend of the CRM portal. Sessions are cookie based; the CRM backend token stays on the server.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crmdesk/portal/internal/api"
	"github.com/crmdesk/portal/internal/api/handler"
	"github.com/crmdesk/portal/internal/api/middleware"
	"github.com/crmdesk/portal/internal/core/service"
	"github.com/crmdesk/portal/internal/infrastructure/crmapi"
	mongodb "github.com/crmdesk/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/crmdesk/portal/internal/infrastructure/db/redis"
	"github.com/crmdesk/portal/internal/infrastructure/queue"
	"github.com/crmdesk/portal/internal/pkg/config"
	"github.com/crmdesk/portal/pkg/logger"
)

const (
	serviceName     = "crm-portal"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	activityRepo := mongodb.NewActivityRepository(db)
	if err := activityRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("activity indexes")
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, activityRepo, log)
	dispatcher.Start(workerCtx)

	backend, err := crmapi.New(crmapi.Config{
		BaseURL: cfg.CRMAPI.BaseURL,
		Timeout: cfg.CRMAPI.Timeout,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("crm backend client")
	}

	authService := service.NewAuthService(backend, redisdb.NewSessionStore(rdb), dispatcher, cfg.Session.TTL, log)
	crmService := service.NewCRMService(backend, dispatcher, activityRepo, log)

	e := api.NewRouter(api.Dependencies{
		Auth:        authService,
		CRM:         crmService,
		Idempotency: redisdb.NewIdempotencyGuard(rdb),
		Cookie: middleware.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secret: []byte(cfg.Session.Secret),
			Secure: cfg.IsProduction(),
		},
		Checks: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Logger: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("crm_api", backend.BaseURL()).Msg("portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	stopWorkers()
	dispatcher.Wait()
}
