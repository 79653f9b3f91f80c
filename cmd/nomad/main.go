package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tjfontaine/neo-nomad/internal/api"
	"github.com/tjfontaine/neo-nomad/internal/config"
	"github.com/tjfontaine/neo-nomad/internal/domain"
	"github.com/tjfontaine/neo-nomad/internal/llm"
	"github.com/tjfontaine/neo-nomad/internal/llm/gemini"
	"github.com/tjfontaine/neo-nomad/internal/llm/openrouter"
	"github.com/tjfontaine/neo-nomad/internal/market"
	"github.com/tjfontaine/neo-nomad/internal/negotiation"
	"github.com/tjfontaine/neo-nomad/internal/neo"
	"github.com/tjfontaine/neo-nomad/internal/server"
	"github.com/tjfontaine/neo-nomad/internal/session"
	"github.com/tjfontaine/neo-nomad/internal/telemetry"
	"github.com/tjfontaine/neo-nomad/internal/voice"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	shutdownTracer, err := telemetry.Init("neo-nomad", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	configPath := os.Getenv("NOMAD_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Each capability runs live when its credentials are present, and in
	// a degraded variant otherwise. The app stays usable either way.
	var marketData domain.MarketData
	if cfg.Perplexity.APIKey != "" {
		marketData = market.NewClient(cfg.Perplexity.APIKey, logger)
	} else {
		marketData = market.NewOffline(logger)
	}

	var (
		settler domain.Settler
		status  api.StatusSource
	)
	if cfg.Neo.NodeURL != "" {
		chain := neo.NewClient(logger, neo.WithNodeURL(cfg.Neo.NodeURL))
		settler = neo.NewSettler(chain, logger)
		status = chain
	} else {
		settler = neo.NewOfflineSettler(logger)
		status = neo.OfflineStatus{}
	}

	var narrator domain.Narrator
	if cfg.ElevenLabs.APIKey != "" {
		narrator = voice.NewClient(cfg.ElevenLabs.APIKey, logger,
			voice.WithVoiceMap(cfg.ElevenLabs.Voices))
	} else {
		narrator = voice.NewOffline(logger)
	}

	chat := buildChatChain(cfg, logger)

	orchestrator := negotiation.New(chat, marketData, logger)
	handler := api.NewHandler(orchestrator, settler, narrator, status, session.NewStore(),
		api.Availability{
			Market: cfg.Perplexity.APIKey != "",
			LLM:    chat != nil,
			Voice:  cfg.ElevenLabs.APIKey != "",
		}, logger)

	srv := server.New(cfg.Server.Port, logger)
	handler.Routes(srv.Router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case sig := <-sigCh:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

// buildChatChain assembles the provider fallback chain from configuration.
// Providers without an API key are skipped; with none configured the chain
// is nil and analysis runs degraded.
func buildChatChain(cfg *config.Config, logger *slog.Logger) domain.ChatProvider {
	var providers []domain.ChatProvider
	for _, name := range cfg.Providers.Fallback {
		switch name {
		case "openrouter":
			if cfg.Providers.OpenRouter.APIKey == "" {
				continue
			}
			var opts []openrouter.ClientOption
			if cfg.Providers.OpenRouter.Model != "" {
				opts = append(opts, openrouter.WithModel(cfg.Providers.OpenRouter.Model))
			}
			providers = append(providers, openrouter.NewClient(cfg.Providers.OpenRouter.APIKey, opts...))
		case "gemini":
			if cfg.Providers.Gemini.APIKey == "" {
				continue
			}
			var opts []gemini.ClientOption
			if cfg.Providers.Gemini.Model != "" {
				opts = append(opts, gemini.WithModel(cfg.Providers.Gemini.Model))
			}
			providers = append(providers, gemini.NewClient(cfg.Providers.Gemini.APIKey, opts...))
		default:
			logger.Warn("unknown provider in fallback order", slog.String("provider", name))
		}
	}
	if len(providers) == 0 {
		logger.Warn("no chat providers configured, analysis disabled")
		return nil
	}
	chain, err := llm.NewChain(logger, providers...)
	if err != nil {
		logger.Warn("chat chain unavailable", slog.String("error", err.Error()))
		return nil
	}
	return chain
}
