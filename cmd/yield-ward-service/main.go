package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yieldward/yield-ward-service/cmd/yield-ward-service/cli"
	"github.com/yieldward/yield-ward-service/cmd/yield-ward-service/scripts"
	"github.com/yieldward/yield-ward-service/internal/api"
	"github.com/yieldward/yield-ward-service/internal/clients"
	"github.com/yieldward/yield-ward-service/internal/config"
	"github.com/yieldward/yield-ward-service/internal/db/model"
	"github.com/yieldward/yield-ward-service/internal/observability/healthcheck"
	"github.com/yieldward/yield-ward-service/internal/observability/metrics"
	"github.com/yieldward/yield-ward-service/internal/queue"
	"github.com/yieldward/yield-ward-service/internal/relayer"
	"github.com/yieldward/yield-ward-service/internal/services"
	"github.com/yieldward/yield-ward-service/internal/state"
)

const shutdownTimeout = 10 * time.Second

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// setup cli commands and flags
	if err := cli.Setup(); err != nil {
		log.Fatal().Err(err).Msg("error while setting up cli")
	}

	// load config
	cfgPath := cli.GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}
	if cfg.Server.LogLevel != "" {
		logLevel, _ := zerolog.ParseLevel(cfg.Server.LogLevel)
		zerolog.SetGlobalLevel(logLevel)
	}

	var tokens *config.TokenBootstrap
	if tokensPath := cli.GetTokensPath(); tokensPath != "" {
		tokens, err = config.LoadTokenBootstrap(tokensPath)
		if err != nil {
			log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading tokens file: %s", tokensPath))
		}
	}

	// initialize metrics with the metrics port from config
	metrics.Init(cfg.Metrics.GetMetricsAddress())

	if err = model.Setup(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("error while setting up yield ward db model")
	}

	store, err := state.NewLocalStore(cfg.State.Path, cfg.State.OpenTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while opening engine store: %s", cfg.State.Path))
	}
	defer store.Close()

	svc, err := services.New(ctx, cfg, store)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up yield ward services layer")
	}
	if err = svc.Bootstrap(ctx, tokens); err != nil {
		log.Fatal().Err(err).Msg("error while bootstrapping engine state")
	}

	queues, err := queue.New(&cfg.Queue, svc)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up queues")
	}
	defer queues.StopReceivingMessages()

	if cli.GetReplayFlag() {
		log.Info().Msg("Replay flag is set. Starting replay of unprocessable messages.")
		err := scripts.ReplayUnprocessableMessages(ctx, queues.BridgeResponseQueueClient, svc.DbClient)
		if err != nil {
			log.Fatal().Err(err).Msg("error while replaying unprocessable messages")
		}
		return
	}

	queues.StartReceivingMessages()

	c := clients.New(cfg)
	relayer.New(&cfg.Relayer, store, queue.NewGmpPublisher(queues.GmpOutboundQueueClient), c.Ledger, svc.DbClient).Start(ctx)

	err = healthcheck.StartHealthCheckCron(ctx, cfg.Server.HealthCheckInterval,
		healthcheck.Check{Name: "queues", Run: func(context.Context) error { return queues.IsConnectionHealthy() }},
		healthcheck.Check{Name: "store", Run: svc.DoHealthCheck},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error while starting health check cron")
	}

	apiServer, err := api.New(ctx, cfg, svc)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up yield ward api service")
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error while shutting down api server")
		}
	}()
	if err = apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("error while starting yield ward api service")
	}
}
