// Command news_sync runs a single fetch-classify-store pass and exits.
// Useful for cron-style deployments and for backfilling a fresh database.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nexusai/newsnexus/internal/fetcher"
	"github.com/nexusai/newsnexus/internal/genai"
	"github.com/nexusai/newsnexus/internal/ingest"
	"github.com/nexusai/newsnexus/internal/storage/factory"
	"github.com/nexusai/newsnexus/internal/translate"
)

func main() {
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

	newsClient, err := fetcher.NewClient(cfg.FetcherConfig)
	if err != nil {
		slog.Error("Failed to create news client", "error", err)
		os.Exit(1)
	}

	syncOpts := []ingest.SyncerOption{
		ingest.WithAdmitOptions(ingest.AdmitOptions{StrictAIFilter: cfg.StrictAIFilter}),
	}
	if cfg.GeminiConfig.APIKey != "" && cfg.TranslateLanguage != "" {
		gemini, err := genai.NewGeminiClient(cfg.GeminiConfig)
		if err != nil {
			slog.Error("Failed to create Gemini client", "error", err)
			os.Exit(1)
		}
		syncOpts = append(syncOpts, ingest.WithTranslator(translate.New(gemini, cfg.TranslateLanguage)))
	}

	syncer := ingest.NewSyncer(newsClient, backend.Storer, syncOpts...)
	if err := syncer.Run(ctx); err != nil {
		slog.Error("Sync pass failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Sync pass completed")
}
