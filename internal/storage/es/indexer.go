package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"

	"github.com/nexusai/newsnexus/internal/domain"
)

// Indexer mirrors the persisted batch into the search index. Documents are
// indexed by article id, so re-indexing an overlapping batch is idempotent.
type Indexer struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewIndexer(ctx context.Context, config ClientConfig) (*Indexer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	if config.IndexName == "" {
		config.IndexName = DefaultIndexName
	}

	indexer := &Indexer{
		client:    client,
		indexName: config.IndexName,
	}

	if err := indexer.ensureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return indexer, nil
}

func (e *Indexer) ensureIndex(ctx context.Context) error {
	exists, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		return nil
	}

	createRes, err := e.client.Indices.Create(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("index created", "index", e.indexName)
	return nil
}

// Upsert bulk-indexes the batch.
func (e *Indexer) Upsert(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         e.indexName,
		Client:        e.client,
		NumWorkers:    4,
		FlushBytes:    5e+6, // 5MB
		FlushInterval: 30 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var failed int64

	for _, article := range articles {
		doc := toDocument(article)

		docBytes, err := json.Marshal(doc)
		if err != nil {
			slog.Error("failed to marshal document", "error", err, "id", doc.ID)
			failed++
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(docBytes),
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				failed++
				if err != nil {
					slog.Error("bulk index error", "error", err, "id", item.DocumentID)
				} else {
					slog.Error("bulk index error", "status", res.Status, "reason", res.Error.Reason, "id", item.DocumentID)
				}
			},
		})
		if err != nil {
			failed++
			slog.Error("failed to add document to bulk indexer", "error", err, "id", doc.ID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("bulk indexing failed for %d of %d documents", failed, len(articles))
	}

	slog.Info("bulk indexing completed", "count", len(articles), "index", e.indexName)
	return nil
}
