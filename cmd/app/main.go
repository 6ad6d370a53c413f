// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"daily-chronicle-bot/internal/application"
	"daily-chronicle-bot/internal/config"
	"daily-chronicle-bot/internal/domain/ports/adapter"
	aiAdapters "daily-chronicle-bot/internal/infra/adapters/ai"
	tele "daily-chronicle-bot/internal/infra/adapters/telegram"
	"daily-chronicle-bot/internal/infra/db/mongodb"
	httpapi "daily-chronicle-bot/internal/infra/http"
	"daily-chronicle-bot/internal/infra/logging"
	"daily-chronicle-bot/internal/infra/metrics"
	"daily-chronicle-bot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- MongoDB ----
	// A store that cannot be reached at startup is fatal.
	client, err := mongodb.NewClient(ctx, cfg.Database.URI)
	if err != nil {
		logger.Fatal().Err(err).Msg("mongodb connect failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.Database.Name)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("mongodb index bootstrap failed")
	}

	// ---- Repositories ----
	userRepo := mongodb.NewMongoUserRepo(db)
	eventRepo := mongodb.NewMongoEventRepo(db)

	// ---- AI Adapter ----
	var ai adapter.AIServiceAdapter
	switch strings.ToLower(cfg.AI.Provider) {
	case "gemini":
		ai, err = aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.DefaultModel, cfg.AI.MaxOutputTokens)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini adapter failed")
		}
		logger.Info().Str("model", cfg.AI.DefaultModel).Msg("AI adapter: Gemini")
	case "openai":
		ai, err = aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.DefaultModel, cfg.AI.MaxOutputTokens)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai adapter failed")
		}
		logger.Info().Str("model", cfg.AI.DefaultModel).Msg("AI adapter: OpenAI")
	default:
		ai = aiAdapters.NewNoopAIAdapter()
		logger.Warn().Msg("AI adapter: noop")
	}

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(userRepo, logger)
	eventUC := usecase.NewEventUseCase(eventRepo, logger)
	postUC := usecase.NewPostUseCase(eventUC, ai, cfg.AI.Provider, cfg.AI.DefaultModel, logger)

	// ---- Facade ----
	facade := application.NewBotFacade(userUC, eventUC, postUC)

	// ---- Telegram ----
	botAdapter, err := tele.NewRealBotAdapter(&cfg.Bot, facade, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram adapter failed")
	}
	if strings.ToLower(cfg.Bot.Mode) == "polling" {
		go func() {
			if err := botAdapter.StartPolling(ctx); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("telegram polling stopped")
			}
		}()
	} else {
		logger.Info().Str("path", cfg.Bot.WebhookPath).Msg("webhook mode: updates arrive via HTTP")
	}

	// ---- HTTP server (webhook + health + metrics) ----
	srv := httpapi.NewServer(botAdapter, cfg.Bot.WebhookPath, logger)
	go func() {
		if err := srv.Start(cfg.HTTP.Port); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()
	botAdapter.StopPolling()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown failed")
	}
}
