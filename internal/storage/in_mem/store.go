// Package in_mem provides a map-backed store used by unit tests and dry
// runs. It honors the same upsert-by-id and read-ordering contracts as the
// Postgres backend.
package in_mem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nexusai/newsnexus/internal/domain"
)

type Store struct {
	mu       sync.RWMutex
	articles map[string]domain.Article
	groups   map[uuid.UUID]domain.Group
	messages []domain.GroupMessage

	upsertCalls int
}

func NewStore() *Store {
	return &Store{
		articles: make(map[string]domain.Article),
		groups:   make(map[uuid.UUID]domain.Group),
	}
}

func (s *Store) Upsert(ctx context.Context, articles []domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.upsertCalls++
	for _, article := range articles {
		s.articles[article.ID] = article
	}
	return nil
}

// UpsertCalls reports how many times Upsert ran. Test hook.
func (s *Store) UpsertCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.upsertCalls
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}

func (s *Store) Get(id string) (domain.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	article, ok := s.articles[id]
	return article, ok
}

func (s *Store) ListBySector(ctx context.Context, sector *domain.Sector, limit int) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Article, 0, len(s.articles))
	for _, article := range s.articles {
		if sector != nil && *sector != domain.SectorGeneral && article.Sector != *sector {
			continue
		}
		result = append(result, article)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].PublishedAt.After(result[j].PublishedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) Search(ctx context.Context, query string, limit int) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(query)
	result := make([]domain.Article, 0)
	for _, article := range s.articles {
		haystack := strings.ToLower(article.Title + " " + article.Summary + " " + article.Content)
		if strings.Contains(haystack, lower) {
			result = append(result, article)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].PublishedAt.After(result[j].PublishedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) ListGroups(ctx context.Context) ([]domain.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]domain.Group, 0, len(s.groups))
	for _, group := range s.groups {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CreatedAt.Before(groups[j].CreatedAt)
	})
	return groups, nil
}

func (s *Store) CreateGroup(ctx context.Context, group domain.Group) (domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}
	s.groups[group.ID] = group
	return group, nil
}

func (s *Store) ListGroupMessages(ctx context.Context, groupID uuid.UUID, limit int) ([]domain.GroupMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]domain.GroupMessage, 0)
	for _, m := range s.messages {
		if m.GroupID != groupID {
			continue
		}
		if m.NewsID != "" {
			if article, ok := s.articles[m.NewsID]; ok {
				copied := article
				m.Article = &copied
			}
		}
		messages = append(messages, m)
		if limit > 0 && len(messages) == limit {
			break
		}
	}
	return messages, nil
}

func (s *Store) SendGroupMessage(ctx context.Context, message domain.GroupMessage) (domain.GroupMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	s.messages = append(s.messages, message)
	return message, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}
