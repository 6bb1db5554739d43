package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTouchProvenance_AppendsNewFingerprint(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	profile := Profile{}

	profile.TouchProvenance("203.0.113.7", "agent-a", now)

	assert.Equal(t, "203.0.113.7", profile.IP)
	assert.Equal(t, "agent-a", profile.UserAgent)
	assert.Equal(t, now, profile.VisitDate)
	require.Len(t, profile.History, 1)
	assert.Equal(t, now, profile.History[0].VisitDate)
}

func TestTouchProvenance_UpdatesKnownFingerprintInPlace(t *testing.T) {
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	profile := Profile{}
	profile.TouchProvenance("203.0.113.7", "agent-a", first)
	profile.TouchProvenance("203.0.113.7", "agent-a", second)

	require.Len(t, profile.History, 1, "same (ip, user_agent) must not grow history")
	assert.Equal(t, second, profile.History[0].VisitDate)
	assert.Equal(t, second, profile.VisitDate)
}

func TestTouchProvenance_DistinctFingerprintsAccumulate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	profile := Profile{}
	profile.TouchProvenance("203.0.113.7", "agent-a", now)
	profile.TouchProvenance("203.0.113.7", "agent-b", now.Add(time.Minute))
	profile.TouchProvenance("203.0.113.8", "agent-a", now.Add(2*time.Minute))

	require.Len(t, profile.History, 3)
	assert.Equal(t, "203.0.113.8", profile.IP)
	assert.Equal(t, "agent-a", profile.UserAgent)
}

func TestTouchProvenance_VisitDateIsMonotonic(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	profile := Profile{}
	for i := 0; i < 5; i++ {
		next := base.Add(time.Duration(i) * time.Minute)
		profile.TouchProvenance("203.0.113.7", "agent-a", next)
		assert.Equal(t, next, profile.VisitDate)
	}
}
