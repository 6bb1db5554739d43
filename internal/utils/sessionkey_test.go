package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionKey_Length(t *testing.T) {
	key := NewSessionKey()
	assert.Len(t, key, SessionKeyLength)

	for _, c := range key {
		isHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
		assert.True(t, isHex, "expected hex character, got %q", c)
	}
}

func TestNewSessionKey_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		key := NewSessionKey()
		_, dup := seen[key]
		assert.False(t, dup, "duplicate session key generated: %s", key)
		seen[key] = struct{}{}
	}
}
