package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexusai/newsnexus/internal/domain"
)

type GroupStore struct {
	db *pgxpool.Pool
}

func NewGroupStore(pool *ConnectionPool) *GroupStore {
	return &GroupStore{db: pool.conn}
}

func (g *GroupStore) ListGroups(ctx context.Context) ([]domain.Group, error) {
	rows, err := g.db.Query(ctx, `
		SELECT id, name, description, type, created_at
		FROM groups
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	groups := make([]domain.Group, 0)
	for rows.Next() {
		var group domain.Group
		if err := rows.Scan(&group.ID, &group.Name, &group.Description, &group.Type, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

func (g *GroupStore) CreateGroup(ctx context.Context, group domain.Group) (domain.Group, error) {
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}

	_, err := g.db.Exec(ctx, `
		INSERT INTO groups (id, name, description, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, group.ID, group.Name, group.Description, group.Type, group.CreatedAt)
	if err != nil {
		return domain.Group{}, fmt.Errorf("insert group: %w", err)
	}
	return group, nil
}

func (g *GroupStore) ListGroupMessages(ctx context.Context, groupID uuid.UUID, limit int) ([]domain.GroupMessage, error) {
	rows, err := g.db.Query(ctx, `
		SELECT
			m.id, m.group_id, m.user_id, m.content, COALESCE(m.news_id, ''), m.created_at,
			a.id, a.title, a.summary, a.content, a.source_url, a.image_url,
			a.published_at, a.sector, a.impact_level, a.source_name, a.author
		FROM group_messages m
		LEFT JOIN news_articles a ON a.id = m.news_id
		WHERE m.group_id = $1
		ORDER BY m.created_at
		LIMIT $2
	`, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("query group messages: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.GroupMessage, 0)
	for rows.Next() {
		var m domain.GroupMessage
		var (
			artID, artTitle, artSummary, artContent       *string
			artSourceURL, artImageURL                     *string
			artPublishedAt                                *time.Time
			artSector, artImpact, artSourceName, artAuthor *string
		)
		if err := rows.Scan(
			&m.ID, &m.GroupID, &m.UserID, &m.Content, &m.NewsID, &m.CreatedAt,
			&artID, &artTitle, &artSummary, &artContent,
			&artSourceURL, &artImageURL, &artPublishedAt,
			&artSector, &artImpact, &artSourceName, &artAuthor,
		); err != nil {
			return nil, fmt.Errorf("scan group message: %w", err)
		}

		if artID != nil {
			m.Article = &domain.Article{
				ID:          *artID,
				Title:       *artTitle,
				Summary:     *artSummary,
				Content:     *artContent,
				SourceURL:   *artSourceURL,
				ImageURL:    *artImageURL,
				PublishedAt: *artPublishedAt,
				Sector:      domain.Sector(*artSector),
				ImpactLevel: domain.ImpactLevel(*artImpact),
				SourceName:  *artSourceName,
				Author:      *artAuthor,
			}
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (g *GroupStore) SendGroupMessage(ctx context.Context, message domain.GroupMessage) (domain.GroupMessage, error) {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	var newsID *string
	if message.NewsID != "" {
		newsID = &message.NewsID
	}

	_, err := g.db.Exec(ctx, `
		INSERT INTO group_messages (id, group_id, user_id, content, news_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, message.ID, message.GroupID, message.UserID, message.Content, newsID, message.CreatedAt)
	if err != nil {
		return domain.GroupMessage{}, fmt.Errorf("insert group message: %w", err)
	}
	return message, nil
}
