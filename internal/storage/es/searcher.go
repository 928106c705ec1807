package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"

	"github.com/nexusai/newsnexus/internal/domain"
)

// Searcher answers substring-style queries against the article index using
// a multi_match over title, summary, and content.
type Searcher struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewSearcher(config ClientConfig) (*Searcher, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	if config.IndexName == "" {
		config.IndexName = DefaultIndexName
	}

	return &Searcher{
		client:    client,
		indexName: config.IndexName,
	}, nil
}

func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]domain.Article, error) {
	slog.Debug("executing es search", "query", query, "limit", limit)

	multiMatch := &types.MultiMatchQuery{
		Query:  query,
		Fields: []string{"title^2.0", "summary", "content"},
	}

	res, err := s.client.Search().
		Index(s.indexName).
		Query(&types.Query{MultiMatch: multiMatch}).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}

	articles := make([]domain.Article, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc Document
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("decode es hit: %w", err)
		}
		articles = append(articles, doc.toArticle())
	}

	return articles, nil
}
