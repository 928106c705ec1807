// Package translate rewrites article titles and summaries into a target
// language. Translation is best-effort enrichment: any failure keeps the
// original text and never fails the batch.
package translate

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/nexusai/newsnexus/internal/domain"
	"github.com/nexusai/newsnexus/internal/genai"
)

const defaultConcurrency = 4

type Translator struct {
	generator   genai.TextGenerator
	language    string
	concurrency int
}

type Option func(*Translator)

func WithConcurrency(n int) Option {
	return func(t *Translator) {
		if n > 0 {
			t.concurrency = n
		}
	}
}

func New(generator genai.TextGenerator, language string, opts ...Option) *Translator {
	t := &Translator{
		generator:   generator,
		language:    language,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TranslateBatch rewrites title and summary for every article in place,
// fanning out across the batch and joining before return. Articles are
// independent, so one failed translation does not block the rest.
func (t *Translator) TranslateBatch(ctx context.Context, articles []domain.Article) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.concurrency)

	for i := range articles {
		g.Go(func() error {
			t.translateArticle(ctx, &articles[i])
			return nil
		})
	}

	// Workers never return errors; Wait is purely the join barrier.
	_ = g.Wait()
}

func (t *Translator) translateArticle(ctx context.Context, article *domain.Article) {
	if translated, err := t.translateText(ctx, article.Title); err != nil {
		slog.Warn("title translation failed, keeping original", "id", article.ID, "error", err)
	} else {
		article.Title = translated
	}

	if translated, err := t.translateText(ctx, article.Summary); err != nil {
		slog.Warn("summary translation failed, keeping original", "id", article.ID, "error", err)
	} else {
		article.Summary = translated
	}
}

func (t *Translator) translateText(ctx context.Context, text string) (string, error) {
	if text == "" {
		return text, nil
	}

	prompt := fmt.Sprintf(
		"Translate the following news text to %s. Reply with the translation only, no preamble. Text: %s",
		t.language, text,
	)

	translated, err := t.generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	if translated == "" {
		return "", fmt.Errorf("empty translation")
	}
	return translated, nil
}
