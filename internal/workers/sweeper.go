package workers

import (
	"context"
	"time"

	"github.com/ingib/site-auth/internal/logger"
)

const (
	DefaultSweepInterval = time.Hour
	DefaultSessionMaxAge = 30 * 24 * time.Hour

	sweepTimeout = time.Minute
)

// StaleSessionStore removes unclaimed anonymous profiles whose last
// visit is older than cutoff. Satisfied by the profile repository.
type StaleSessionStore interface {
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionSweeper periodically discards anonymous sessions nobody came
// back for. Claimed profiles are never touched; the store-level sweep
// only matches associations with no identity attached.
type SessionSweeper struct {
	profiles StaleSessionStore
	interval time.Duration
	maxAge   time.Duration
	logger   *logger.Logger
}

func NewSessionSweeper(profiles StaleSessionStore, interval, maxAge time.Duration, logger *logger.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if maxAge <= 0 {
		maxAge = DefaultSessionMaxAge
	}

	return &SessionSweeper{
		profiles: profiles,
		interval: interval,
		maxAge:   maxAge,
		logger:   logger,
	}
}

// Run starts the sweep loop in its own goroutine.
func (s *SessionSweeper) Run() {
	go s.loop()
}

func (s *SessionSweeper) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for range ticker.C {
		s.sweep()
	}
}

func (s *SessionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	removed, err := s.profiles.DeleteStale(ctx, time.Now().Add(-s.maxAge))
	if err != nil {
		s.logger.Err(err).Msg("stale session sweep failed")
		return
	}

	if removed > 0 {
		s.logger.Info().Int64("removed", removed).Msg("swept stale anonymous sessions")
	}
}
