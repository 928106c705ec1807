// Package factory assembles the configured store backends behind the
// storage interfaces.
package factory

import (
	"context"
	"fmt"

	"github.com/nexusai/newsnexus/internal/domain"
	"github.com/nexusai/newsnexus/internal/storage"
	"github.com/nexusai/newsnexus/internal/storage/es"
	"github.com/nexusai/newsnexus/internal/storage/pg"
)

// Backend bundles everything the application needs from persistence.
type Backend struct {
	Storer storage.Storer
	Reader storage.Reader
	Groups storage.GroupStore
	Pinger storage.Pinger

	pool *pg.ConnectionPool
}

func (b *Backend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}

// Checker exposes a liveness probe over the Postgres pool for /health.
func (b *Backend) Checker() *pg.HealthChecker {
	return pg.NewHealthChecker(b.pool)
}

func New(ctx context.Context, cfg Config) (*Backend, error) {
	pool, err := pg.NewConnectionPool(ctx, cfg.PG)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	backend := &Backend{
		Storer: pg.NewStorer(pool),
		Reader: pg.NewReader(pool),
		Groups: pg.NewGroupStore(pool),
		Pinger: pool,
		pool:   pool,
	}

	switch cfg.SearchBackend {
	case "", storage.PG:
		return backend, nil
	case storage.ES:
		indexer, err := es.NewIndexer(ctx, cfg.ES)
		if err != nil {
			return nil, fmt.Errorf("create es indexer: %w", err)
		}
		searcher, err := es.NewSearcher(cfg.ES)
		if err != nil {
			return nil, fmt.Errorf("create es searcher: %w", err)
		}

		backend.Storer = &mirroredStorer{primary: backend.Storer, index: indexer}
		backend.Reader = &searchSplitReader{feed: backend.Reader, searcher: searcher}
		return backend, nil
	default:
		pool.Close()
		return nil, fmt.Errorf("%w: %s", storage.ErrUnsupportedBackend, cfg.SearchBackend)
	}
}

// mirroredStorer writes to Postgres first, then mirrors the batch into the
// search index. An index failure is returned so the pass logs it, but the
// rows are already durable in Postgres.
type mirroredStorer struct {
	primary storage.Storer
	index   storage.Storer
}

func (m *mirroredStorer) Upsert(ctx context.Context, articles []domain.Article) error {
	if err := m.primary.Upsert(ctx, articles); err != nil {
		return err
	}
	return m.index.Upsert(ctx, articles)
}

// searchSplitReader serves the feed from Postgres and search from the index.
type searchSplitReader struct {
	feed     storage.Reader
	searcher interface {
		Search(ctx context.Context, query string, limit int) ([]domain.Article, error)
	}
}

func (r *searchSplitReader) ListBySector(ctx context.Context, sector *domain.Sector, limit int) ([]domain.Article, error) {
	return r.feed.ListBySector(ctx, sector, limit)
}

func (r *searchSplitReader) Search(ctx context.Context, query string, limit int) ([]domain.Article, error) {
	return r.searcher.Search(ctx, query, limit)
}
