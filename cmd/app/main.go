// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"cekkuota-bot/internal/config"
	"cekkuota-bot/internal/infra/adapters/telegram"
	"cekkuota-bot/internal/infra/adapters/upstream"
	"cekkuota-bot/internal/infra/logging"
	"cekkuota-bot/internal/infra/state"
	"cekkuota-bot/internal/infra/web"
	"cekkuota-bot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cronMode := flag.Bool("cron", false, "one-shot batch run (externally timer-triggered), then exit")
	envFile := flag.String("env-file", "", "optional .env file to load before reading the environment")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("env file: %v", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log)

	// ---- Adapters ----
	bot, err := telegram.NewBot(&cfg.Bot, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}
	quota := upstream.NewClient(&cfg.Upstream, cfg.RequestTimeout(), logger)

	// ---- Batch mode ----
	if *cronMode {
		runner := usecase.NewBatchUseCase(cfg, bot, quota, logger)
		if err := runner.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("batch run failed")
			os.Exit(1)
		}
		return
	}

	// ---- Daemon mode ----
	cursors := state.NewFileCursorStore(cfg.State.Dir, logger)
	dispatcher := usecase.NewCommandUseCase(cfg, bot, quota, logger)
	loop := usecase.NewPollUseCase(cfg, bot, dispatcher, cursors, logger)

	admin := web.NewServer(cfg.Admin.Addr, logger)
	go func() {
		if err := admin.Start(); err != nil {
			logger.Error().Err(err).Msg("admin server failed")
		}
	}()

	go func() {
		if err := loop.Run(ctx); err != nil && err != context.Canceled {
			logger.Error().Err(err).Msg("update loop stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()
	_ = admin.Shutdown(context.Background())
}
