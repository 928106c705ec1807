// Package storage defines the read/write contracts between the sync
// pipeline, the API routers, and the concrete store backends.
package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/nexusai/newsnexus/internal/domain"
)

const (
	// DefaultFeedLimit caps /api/feed responses.
	DefaultFeedLimit = 50
	// SearchLimit caps /api/search results.
	SearchLimit = 20
)

// Storer persists a sync batch. Upsert is idempotent by article id:
// conflicting ids overwrite prior values, repeated overlapping batches never
// duplicate rows.
type Storer interface {
	Upsert(ctx context.Context, articles []domain.Article) error
}

// Reader answers the API layer's read queries.
type Reader interface {
	// ListBySector returns articles ordered by published_at descending.
	// A nil sector, or General, means no filter.
	ListBySector(ctx context.Context, sector *domain.Sector, limit int) ([]domain.Article, error)
	// Search matches title/summary/content by case-insensitive substring.
	Search(ctx context.Context, query string, limit int) ([]domain.Article, error)
}

// GroupStore covers the group-sharing CRUD surface.
type GroupStore interface {
	ListGroups(ctx context.Context) ([]domain.Group, error)
	CreateGroup(ctx context.Context, group domain.Group) (domain.Group, error)
	ListGroupMessages(ctx context.Context, groupID uuid.UUID, limit int) ([]domain.GroupMessage, error)
	SendGroupMessage(ctx context.Context, message domain.GroupMessage) (domain.GroupMessage, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Type string

const (
	PG    Type = "pg"
	ES    Type = "es"
	InMem Type = "in_mem"
)

type StorageError string

const (
	ErrUnsupportedBackend StorageError = "unsupported storage backend"
)

func (e StorageError) Error() string {
	return string(e)
}
