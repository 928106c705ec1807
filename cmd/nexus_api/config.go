package main

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/nexusai/newsnexus/internal/fetcher"
	"github.com/nexusai/newsnexus/internal/genai"
	"github.com/nexusai/newsnexus/internal/ingest"
	"github.com/nexusai/newsnexus/internal/storage"
	"github.com/nexusai/newsnexus/internal/storage/es"
	"github.com/nexusai/newsnexus/internal/storage/factory"
	"github.com/nexusai/newsnexus/internal/storage/pg"
	"github.com/nexusai/newsnexus/pkg/config/env"
	"github.com/nexusai/newsnexus/pkg/stringsutil"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type NexusConfig struct {
	StorageConfig factory.Config
	FetcherConfig fetcher.Config
	GeminiConfig  genai.GeminiConfig

	SyncInterval      time.Duration
	TranslateLanguage string
	StrictAIFilter    bool
}

// GeminiEnabled reports whether AI endpoints and translation can be wired.
func (c *NexusConfig) GeminiEnabled() bool {
	return c.GeminiConfig.APIKey != ""
}

func (as *AppConfig) Load() (*NexusConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/nexus_api/.env")
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

	storageCfg := factory.Config{
		SearchBackend: storage.Type(os.Getenv("SEARCH_BACKEND")),
		PG:            pg.PoolConfig{ConnStr: connStr},
	}

	if storageCfg.SearchBackend == storage.ES {
		addresses := stringsutil.RemoveEmptyStrings(strings.Split(os.Getenv("ES_ADDRESSES"), ","))
		if len(addresses) == 0 {
			return nil, errors.New("ES_ADDRESSES is required when SEARCH_BACKEND=es")
		}
		storageCfg.ES = es.ClientConfig{
			Addresses: addresses,
			IndexName: os.Getenv("ES_INDEX"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
	}

	interval := ingest.DefaultSyncInterval
	if raw := os.Getenv("SYNC_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.New("SYNC_INTERVAL must be a duration, e.g. 6h or 30m")
		}
		interval = parsed
	}

	return &NexusConfig{
		StorageConfig: storageCfg,
		FetcherConfig: fetcher.Config{
			APIKey: newsAPIKey,
		},
		GeminiConfig: genai.GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},
		SyncInterval:      interval,
		TranslateLanguage: os.Getenv("TRANSLATE_LANGUAGE"),
		StrictAIFilter:    os.Getenv("STRICT_AI_FILTER") == "true",
	}, nil
}
