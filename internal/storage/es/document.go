package es

import (
	"time"

	"github.com/nexusai/newsnexus/internal/domain"
)

// Document is the index representation of a domain.Article plus the moment
// it was indexed.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	SourceURL   string    `json:"source_url"`
	ImageURL    string    `json:"image_url"`
	PublishedAt time.Time `json:"published_at"`
	Sector      string    `json:"sector"`
	ImpactLevel string    `json:"impact_level"`
	SourceName  string    `json:"source_name"`
	Author      string    `json:"author"`
	IndexedAt   time.Time `json:"indexed_at"`
}

func toDocument(a domain.Article) Document {
	return Document{
		ID:          a.ID,
		Title:       a.Title,
		Summary:     a.Summary,
		Content:     a.Content,
		SourceURL:   a.SourceURL,
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt,
		Sector:      string(a.Sector),
		ImpactLevel: string(a.ImpactLevel),
		SourceName:  a.SourceName,
		Author:      a.Author,
		IndexedAt:   time.Now().UTC(),
	}
}

func (d Document) toArticle() domain.Article {
	return domain.Article{
		ID:          d.ID,
		Title:       d.Title,
		Summary:     d.Summary,
		Content:     d.Content,
		SourceURL:   d.SourceURL,
		ImageURL:    d.ImageURL,
		PublishedAt: d.PublishedAt,
		Sector:      domain.Sector(d.Sector),
		ImpactLevel: domain.ImpactLevel(d.ImpactLevel),
		SourceName:  d.SourceName,
		Author:      d.Author,
	}
}
