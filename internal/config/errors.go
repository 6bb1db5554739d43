package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when
// required configuration groups are incomplete.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidAuthConfigs indicates invalid token-signing settings
	// (for example, a missing private or public key path).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
)
