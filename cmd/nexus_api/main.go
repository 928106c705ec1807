package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/nexusai/newsnexus/internal/fetcher"
	"github.com/nexusai/newsnexus/internal/genai"
	"github.com/nexusai/newsnexus/internal/ingest"
	"github.com/nexusai/newsnexus/internal/router"
	"github.com/nexusai/newsnexus/internal/server"
	"github.com/nexusai/newsnexus/internal/storage/factory"
	"github.com/nexusai/newsnexus/internal/translate"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	backend, err := factory.New(ctx, cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create storage backend", "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	s := server.New(sCfg, backend.Checker())

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Nexus AI News API is running")
	})

	router.NewFeedRouter(s.Echo, backend.Reader).Bind()
	router.NewGroupRouter(s.Echo, backend.Groups).Bind()

	var gemini *genai.GeminiClient
	if cfg.GeminiEnabled() {
		gemini, err = genai.NewGeminiClient(cfg.GeminiConfig)
		if err != nil {
			slog.Error("Failed to create Gemini client", "error", err)
			os.Exit(1)
		}
		router.NewAIRouter(s.Echo, gemini).Bind()
	} else {
		slog.Warn("GEMINI_API_KEY is not set, AI endpoints will respond with 503")
		router.NewAIRouter(s.Echo, nil).Bind()
	}

	newsClient, err := fetcher.NewClient(cfg.FetcherConfig)
	if err != nil {
		slog.Error("Failed to create news client", "error", err)
		os.Exit(1)
	}

	syncOpts := []ingest.SyncerOption{
		ingest.WithAdmitOptions(ingest.AdmitOptions{StrictAIFilter: cfg.StrictAIFilter}),
	}
	if gemini != nil && cfg.TranslateLanguage != "" {
		syncOpts = append(syncOpts, ingest.WithTranslator(translate.New(gemini, cfg.TranslateLanguage)))
	}

	syncer := ingest.NewSyncer(newsClient, backend.Storer, syncOpts...)
	scheduler := ingest.NewScheduler(syncer, cfg.SyncInterval)
	if err := scheduler.Start(); err != nil {
		slog.Error("Failed to start sync scheduler", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := scheduler.Stop(ctx); err != nil {
			slog.Warn("Sync scheduler did not stop cleanly", "error", err)
		}
	}()

	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
