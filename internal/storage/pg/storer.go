package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexusai/newsnexus/internal/domain"
)

type Storer struct {
	db *pgxpool.Pool
}

func NewStorer(pool *ConnectionPool) *Storer {
	return &Storer{db: pool.conn}
}

const upsertArticleSQL = `
	INSERT INTO news_articles (
		id, title, summary, content, source_url, image_url,
		published_at, sector, impact_level, source_name, author
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (id) DO UPDATE SET
		title        = EXCLUDED.title,
		summary      = EXCLUDED.summary,
		content      = EXCLUDED.content,
		source_url   = EXCLUDED.source_url,
		image_url    = EXCLUDED.image_url,
		published_at = EXCLUDED.published_at,
		sector       = EXCLUDED.sector,
		impact_level = EXCLUDED.impact_level,
		source_name  = EXCLUDED.source_name,
		author       = EXCLUDED.author;
`

// Upsert writes the whole batch in a single transaction so a failed pass
// never leaves partial rows behind.
func (s *Storer) Upsert(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin upsert tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	for _, a := range articles {
		batch.Queue(upsertArticleSQL,
			a.ID,
			a.Title,
			a.Summary,
			a.Content,
			a.SourceURL,
			a.ImageURL,
			a.PublishedAt,
			a.Sector,
			a.ImpactLevel,
			a.SourceName,
			a.Author,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range articles {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("upsert article batch: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close upsert batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit upsert tx: %w", err)
	}

	slog.Info("articles upserted", "count", len(articles))
	return nil
}
