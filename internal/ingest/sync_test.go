package ingest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/newsnexus/internal/domain"
	"github.com/nexusai/newsnexus/internal/fetcher"
	"github.com/nexusai/newsnexus/internal/genai"
	"github.com/nexusai/newsnexus/internal/storage/in_mem"
	"github.com/nexusai/newsnexus/internal/translate"
)

type fakeSource struct {
	records []fetcher.ProviderArticle
	err     error
}

func (f *fakeSource) FetchAINews(ctx context.Context, _ *domain.Sector) ([]fetcher.ProviderArticle, error) {
	return f.records, f.err
}

type blockingStorer struct {
	release chan struct{}
	entered chan struct{}
	once    sync.Once
}

func (b *blockingStorer) Upsert(ctx context.Context, _ []domain.Article) error {
	b.once.Do(func() { close(b.entered) })
	<-b.release
	return nil
}

type failingStorer struct{}

func (failingStorer) Upsert(ctx context.Context, _ []domain.Article) error {
	return fmt.Errorf("store unavailable")
}

type failingGenerator struct{}

func (failingGenerator) GenerateText(ctx context.Context, _ string) (string, error) {
	return "", fmt.Errorf("quota exceeded")
}

var _ genai.TextGenerator = failingGenerator{}

func TestSyncer_Run_PersistsAdmittedBatch(t *testing.T) {
	source := &fakeSource{records: []fetcher.ProviderArticle{
		providerArticle(nil),
		providerArticle(func(r *fetcher.ProviderArticle) { r.URL = "https://example.com/second" }),
	}}
	store := in_mem.NewStore()

	syncer := NewSyncer(source, store)
	require.NoError(t, syncer.Run(t.Context()))

	assert.Equal(t, 1, store.UpsertCalls())
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, StateIdle, syncer.State())
}

func TestSyncer_Run_FetchFailureIsNoOpPass(t *testing.T) {
	source := &fakeSource{err: fmt.Errorf("connection refused")}
	store := in_mem.NewStore()

	syncer := NewSyncer(source, store)
	require.NoError(t, syncer.Run(t.Context()))

	assert.Equal(t, 0, store.UpsertCalls())
	assert.Equal(t, 0, store.Len())
}

func TestSyncer_Run_EmptyBatchSkipsUpsert(t *testing.T) {
	// Fetched but nothing survives admission.
	source := &fakeSource{records: []fetcher.ProviderArticle{
		providerArticle(func(r *fetcher.ProviderArticle) { r.URLToImage = "" }),
	}}
	store := in_mem.NewStore()

	syncer := NewSyncer(source, store)
	require.NoError(t, syncer.Run(t.Context()))

	assert.Equal(t, 0, store.UpsertCalls())
}

func TestSyncer_Run_TranslationFailureKeepsOriginalText(t *testing.T) {
	source := &fakeSource{records: []fetcher.ProviderArticle{providerArticle(nil)}}
	store := in_mem.NewStore()

	translator := translate.New(failingGenerator{}, "Spanish")
	syncer := NewSyncer(source, store, WithTranslator(translator))
	require.NoError(t, syncer.Run(t.Context()))

	persisted, ok := store.Get(domain.NewsID("https://example.com/openai-model"))
	require.True(t, ok)
	assert.Equal(t, "OpenAI announces a new model", persisted.Title)
	assert.Equal(t, "A new AI model ships today", persisted.Summary)
}

func TestSyncer_Run_PersistFailureIsReturned(t *testing.T) {
	source := &fakeSource{records: []fetcher.ProviderArticle{providerArticle(nil)}}

	syncer := NewSyncer(source, failingStorer{})
	err := syncer.Run(t.Context())

	assert.ErrorContains(t, err, "store unavailable")
	assert.Equal(t, StateIdle, syncer.State())
}

func TestSyncer_TryRun_SkipsOverlappingPass(t *testing.T) {
	source := &fakeSource{records: []fetcher.ProviderArticle{providerArticle(nil)}}
	store := &blockingStorer{
		release: make(chan struct{}),
		entered: make(chan struct{}),
	}

	syncer := NewSyncer(source, store)

	done := make(chan bool)
	go func() {
		done <- syncer.TryRun(t.Context())
	}()

	select {
	case <-store.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first pass never reached the store")
	}

	assert.False(t, syncer.TryRun(t.Context()), "second trigger should be skipped")

	close(store.release)
	assert.True(t, <-done)
}

func TestSyncer_StrictFilterApplied(t *testing.T) {
	source := &fakeSource{records: []fetcher.ProviderArticle{
		providerArticle(func(r *fetcher.ProviderArticle) {
			r.Title = "Local bakery wins contest"
			r.Description = "Sourdough triumph downtown"
		}),
	}}
	store := in_mem.NewStore()

	syncer := NewSyncer(source, store, WithAdmitOptions(AdmitOptions{StrictAIFilter: true}))
	require.NoError(t, syncer.Run(t.Context()))

	assert.Equal(t, 0, store.UpsertCalls())
}
