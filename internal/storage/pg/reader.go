package pg

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexusai/newsnexus/internal/domain"
)

type Reader struct {
	db *pgxpool.Pool
}

func NewReader(pool *ConnectionPool) *Reader {
	return &Reader{db: pool.conn}
}

const articleColumns = `
	id, title, summary, content, source_url, image_url,
	published_at, sector, impact_level, source_name, author
`

func (r *Reader) ListBySector(ctx context.Context, sector *domain.Sector, limit int) ([]domain.Article, error) {
	var rows pgx.Rows
	var err error

	if sector == nil || *sector == domain.SectorGeneral {
		rows, err = r.db.Query(ctx, `
			SELECT `+articleColumns+`
			FROM news_articles
			ORDER BY published_at DESC
			LIMIT $1
		`, limit)
	} else {
		rows, err = r.db.Query(ctx, `
			SELECT `+articleColumns+`
			FROM news_articles
			WHERE sector = $1
			ORDER BY published_at DESC
			LIMIT $2
		`, *sector, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("query feed: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

func (r *Reader) Search(ctx context.Context, query string, limit int) ([]domain.Article, error) {
	pattern := "%" + escapeLike(query) + "%"

	rows, err := r.db.Query(ctx, `
		SELECT `+articleColumns+`
		FROM news_articles
		WHERE title ILIKE $1 OR summary ILIKE $1 OR content ILIKE $1
		ORDER BY published_at DESC
		LIMIT $2
	`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

func scanArticles(rows pgx.Rows) ([]domain.Article, error) {
	articles := make([]domain.Article, 0)
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Summary,
			&a.Content,
			&a.SourceURL,
			&a.ImageURL,
			&a.PublishedAt,
			&a.Sector,
			&a.ImpactLevel,
			&a.SourceName,
			&a.Author,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return articles, nil
}

// escapeLike neutralizes LIKE metacharacters in user input so a search for
// "100%" matches literally.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
