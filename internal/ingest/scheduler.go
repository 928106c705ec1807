package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	DefaultSyncInterval = 6 * time.Hour

	// passTimeout bounds a single scheduled pass so a hung provider call
	// cannot hold the running flag forever.
	passTimeout = 15 * time.Minute
)

// Scheduler owns the recurring sync trigger: one pass immediately at Start,
// then one every interval. Stop waits for an in-flight pass to finish.
type Scheduler struct {
	cron     *cron.Cron
	syncer   *Syncer
	interval time.Duration
}

func NewScheduler(syncer *Syncer, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{}),
		)),
		syncer:   syncer,
		interval: interval,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), s.trigger)
	if err != nil {
		return fmt.Errorf("register sync job: %w", err)
	}

	s.cron.Start()

	// Immediate pass at process start, off the caller's goroutine.
	go s.trigger()

	slog.Info("news sync scheduled", "interval", s.interval)
	return nil
}

func (s *Scheduler) trigger() {
	ctx, cancel := context.WithTimeout(context.Background(), passTimeout)
	defer cancel()
	s.syncer.TryRun(ctx)
}

// Stop halts the trigger and waits for any running pass, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger routes cron's recovery output through slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Info(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
