package factory

import (
	"github.com/nexusai/newsnexus/internal/storage"
	"github.com/nexusai/newsnexus/internal/storage/es"
	"github.com/nexusai/newsnexus/internal/storage/pg"
)

type Config struct {
	// SearchBackend selects where /api/search queries run. The feed and all
	// writes always go to Postgres; ES only mirrors the batch for search.
	SearchBackend storage.Type

	PG pg.PoolConfig
	ES es.ClientConfig
}
