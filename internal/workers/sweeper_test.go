package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ingib/site-auth/internal/logger"
)

// mockStaleStore records the cutoff it was swept with.
type mockStaleStore struct {
	cutoff  time.Time
	removed int64
	err     error
	calls   int
}

func (m *mockStaleStore) DeleteStale(_ context.Context, cutoff time.Time) (int64, error) {
	m.calls++
	m.cutoff = cutoff
	return m.removed, m.err
}

func TestSessionSweeper_SweepUsesMaxAgeCutoff(t *testing.T) {
	store := &mockStaleStore{removed: 2}
	sweeper := NewSessionSweeper(store, time.Hour, 24*time.Hour, logger.Nop())

	before := time.Now().Add(-24 * time.Hour)
	sweeper.sweep()
	after := time.Now().Add(-24 * time.Hour)

	if store.calls != 1 {
		t.Fatalf("expected 1 sweep call, got %d", store.calls)
	}
	if store.cutoff.Before(before) || store.cutoff.After(after) {
		t.Errorf("cutoff %v not within [%v, %v]", store.cutoff, before, after)
	}
}

func TestSessionSweeper_SweepSwallowsStoreError(t *testing.T) {
	store := &mockStaleStore{err: errors.New("connection reset")}
	sweeper := NewSessionSweeper(store, time.Hour, 24*time.Hour, logger.Nop())

	// Must not panic; next tick retries.
	sweeper.sweep()

	if store.calls != 1 {
		t.Fatalf("expected 1 sweep call, got %d", store.calls)
	}
}

func TestNewSessionSweeper_Defaults(t *testing.T) {
	sweeper := NewSessionSweeper(&mockStaleStore{}, 0, 0, logger.Nop())

	if sweeper.interval != DefaultSweepInterval {
		t.Errorf("expected default interval %v, got %v", DefaultSweepInterval, sweeper.interval)
	}
	if sweeper.maxAge != DefaultSessionMaxAge {
		t.Errorf("expected default max age %v, got %v", DefaultSessionMaxAge, sweeper.maxAge)
	}
}
