// HydrAI telemetry API.
//
// @title        HydrAI Telemetry API
// @version      1.0
// @description  Authentication and flow-meter telemetry backend.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hydrai/telemetry-system/internal/api"
	mongodb "github.com/hydrai/telemetry-system/internal/infrastructure/db/mongo"
	redisdb "github.com/hydrai/telemetry-system/internal/infrastructure/db/redis"
	"github.com/hydrai/telemetry-system/internal/infrastructure/genai"
	"github.com/hydrai/telemetry-system/internal/pkg/config"
	"github.com/hydrai/telemetry-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "hydrai-api",
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	gen := genai.NewClient(genai.Config{
		URL:     cfg.GenAI.URL,
		APIKey:  cfg.GenAI.APIKey,
		Timeout: cfg.GenAI.Timeout,
	})

	e, dispatcher := api.NewRouter(db, rdb, gen, cfg, log)

	// Workers outlive the signal context: measurements accepted while the
	// server drains must still be persisted, so they stop only after
	// Shutdown returns.
	dispatchCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	dispatcher.Start(dispatchCtx)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	stopWorkers()
}
