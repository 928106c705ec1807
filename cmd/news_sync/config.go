package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/nexusai/newsnexus/internal/fetcher"
	"github.com/nexusai/newsnexus/internal/genai"
	"github.com/nexusai/newsnexus/internal/storage/factory"
	"github.com/nexusai/newsnexus/internal/storage/pg"
	"github.com/nexusai/newsnexus/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type SyncConfig struct {
	StorageConfig factory.Config
	FetcherConfig fetcher.Config
	GeminiConfig  genai.GeminiConfig

	TranslateLanguage string
	StrictAIFilter    bool
}

func (as *AppConfig) Load() (*SyncConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/news_sync/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	newsAPIKey := os.Getenv("NEWS_API_KEY")
	if newsAPIKey == "" {
		return nil, errors.New("NEWS_API_KEY is required")
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	return &SyncConfig{
		StorageConfig: factory.Config{
			PG: pg.PoolConfig{ConnStr: connStr},
		},
		FetcherConfig: fetcher.Config{
			APIKey: newsAPIKey,
		},
		GeminiConfig: genai.GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},
		TranslateLanguage: os.Getenv("TRANSLATE_LANGUAGE"),
		StrictAIFilter:    os.Getenv("STRICT_AI_FILTER") == "true",
	}, nil
}
