package utils

import (
	"strings"

	"github.com/google/uuid"
)

// SessionKeyLength is the fixed length of an opaque session key.
const SessionKeyLength = 32

// NewSessionKey generates a fresh opaque session key: 32 lowercase hex
// characters derived from a random UUID. Uniqueness is ultimately
// enforced by the database constraint on the profile key column.
func NewSessionKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
