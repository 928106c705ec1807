package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/newsnexus/internal/fetcher"
	"github.com/nexusai/newsnexus/internal/storage/in_mem"
)

func TestScheduler_RunsImmediatePassOnStart(t *testing.T) {
	source := &fakeSource{records: []fetcher.ProviderArticle{providerArticle(nil)}}
	store := in_mem.NewStore()
	syncer := NewSyncer(source, store)

	scheduler := NewScheduler(syncer, time.Hour)
	require.NoError(t, scheduler.Start())
	defer func() {
		require.NoError(t, scheduler.Stop(t.Context()))
	}()

	assert.Eventually(t, func() bool {
		return store.UpsertCalls() == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestNewScheduler_DefaultsInterval(t *testing.T) {
	scheduler := NewScheduler(NewSyncer(&fakeSource{}, in_mem.NewStore()), 0)
	assert.Equal(t, DefaultSyncInterval, scheduler.interval)
}
