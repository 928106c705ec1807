package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nexusai/newsnexus/internal/domain"
	"github.com/nexusai/newsnexus/internal/fetcher"
	"github.com/nexusai/newsnexus/internal/storage"
	"github.com/nexusai/newsnexus/internal/translate"
)

// State is the currently executing pipeline stage, for logs and health.
type State string

const (
	StateIdle        State = "Idle"
	StateFetching    State = "Fetching"
	StateFiltering   State = "Filtering"
	StateClassifying State = "Classifying"
	StateTranslating State = "Translating"
	StatePersisting  State = "Persisting"
)

// ArticleSource abstracts the provider client so tests can inject fixtures.
type ArticleSource interface {
	FetchAINews(ctx context.Context, sectorHint *domain.Sector) ([]fetcher.ProviderArticle, error)
}

type SyncerOption func(*Syncer)

func WithTranslator(t *translate.Translator) SyncerOption {
	return func(s *Syncer) {
		s.translator = t
	}
}

func WithAdmitOptions(opts AdmitOptions) SyncerOption {
	return func(s *Syncer) {
		s.admitOpts = opts
	}
}

// Syncer executes one full sync pass. A pass either hands the whole
// admitted batch to the store or persists nothing.
type Syncer struct {
	source     ArticleSource
	storer     storage.Storer
	translator *translate.Translator
	admitOpts  AdmitOptions

	running atomic.Bool
	state   atomic.Value
}

func NewSyncer(source ArticleSource, storer storage.Storer, opts ...SyncerOption) *Syncer {
	s := &Syncer{
		source: source,
		storer: storer,
	}
	s.state.Store(StateIdle)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Syncer) State() State {
	return s.state.Load().(State)
}

func (s *Syncer) setState(state State) {
	s.state.Store(state)
	slog.Debug("sync state", "state", state)
}

// TryRun starts a pass unless one is already in flight. Overlapping passes
// would double-upsert the same batch concurrently, so a trigger that lands
// mid-pass is skipped rather than queued.
func (s *Syncer) TryRun(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		slog.Warn("sync pass already running, skipping trigger")
		return false
	}
	defer s.running.Store(false)

	if err := s.run(ctx); err != nil {
		slog.Error("sync pass failed", "error", err)
	}
	return true
}

// Run executes a pass and reports persistence failures to the caller.
// Transport failures at the provider are absorbed into an empty batch.
func (s *Syncer) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sync pass already running")
	}
	defer s.running.Store(false)

	return s.run(ctx)
}

func (s *Syncer) run(ctx context.Context) error {
	start := time.Now()
	slog.Info("starting sync pass")
	defer s.setState(StateIdle)

	s.setState(StateFetching)
	records, err := s.source.FetchAINews(ctx, nil)
	if err != nil {
		slog.Warn("fetch failed, continuing with empty batch", "error", err)
		records = nil
	}

	s.setState(StateFiltering)
	admitted := Filter(records, s.admitOpts)

	s.setState(StateClassifying)
	articles := Build(admitted)

	if len(articles) == 0 {
		slog.Info("no articles to sync", "fetched", len(records), "duration", time.Since(start))
		return nil
	}

	if s.translator != nil {
		s.setState(StateTranslating)
		s.translator.TranslateBatch(ctx, articles)
	}

	s.setState(StatePersisting)
	if err := s.storer.Upsert(ctx, articles); err != nil {
		return fmt.Errorf("persist sync batch: %w", err)
	}

	slog.Info("sync pass completed",
		"fetched", len(records),
		"admitted", len(admitted),
		"synced", len(articles),
		"duration", time.Since(start),
	)
	return nil
}
