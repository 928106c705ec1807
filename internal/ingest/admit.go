// Package ingest runs the news sync pipeline: fetch, admit, classify,
// optionally translate, persist.
package ingest

import (
	"log/slog"
	"time"

	"github.com/nexusai/newsnexus/internal/classify"
	"github.com/nexusai/newsnexus/internal/domain"
	"github.com/nexusai/newsnexus/internal/fetcher"
)

// removedSentinel is what the provider substitutes for withdrawn content.
const removedSentinel = "[Removed]"

type AdmitOptions struct {
	// StrictAIFilter additionally requires title+description to match the
	// AI keyword set. Policy toggle, off by default.
	StrictAIFilter bool
}

// Filter applies the admission rules: non-empty title, description, url and
// image url, title not the removed sentinel, and optionally AI relevance.
func Filter(records []fetcher.ProviderArticle, opts AdmitOptions) []fetcher.ProviderArticle {
	admitted := make([]fetcher.ProviderArticle, 0, len(records))
	for _, rec := range records {
		if rec.Title == "" || rec.Description == "" || rec.URL == "" || rec.URLToImage == "" {
			continue
		}
		if rec.Title == removedSentinel {
			continue
		}
		if opts.StrictAIFilter && !classify.AIRelated(rec.Title+" "+rec.Description) {
			continue
		}
		admitted = append(admitted, rec)
	}
	return admitted
}

// Build classifies each admitted record, constructs the Article, and
// collapses duplicates by id. First-seen order wins and is preserved.
func Build(records []fetcher.ProviderArticle) []domain.Article {
	seen := make(map[string]struct{}, len(records))
	articles := make([]domain.Article, 0, len(records))

	for _, rec := range records {
		id := domain.NewsID(rec.URL)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		text := rec.Title + " " + rec.Description
		sector, impact := classify.Classify(text)

		content := rec.Content
		if content == "" {
			content = rec.Description
		}
		author := rec.Author
		if author == "" {
			author = domain.DefaultAuthor
		}

		published, err := time.Parse(time.RFC3339, rec.PublishedAt)
		if err != nil {
			slog.Warn("unparseable publish time", "value", rec.PublishedAt, "url", rec.URL)
		}

		articles = append(articles, domain.Article{
			ID:          id,
			Title:       rec.Title,
			Summary:     rec.Description,
			Content:     content,
			SourceURL:   rec.URL,
			ImageURL:    rec.URLToImage,
			PublishedAt: published,
			Sector:      sector,
			ImpactLevel: impact,
			SourceName:  rec.Source.Name,
			Author:      author,
		})
	}

	return articles
}
