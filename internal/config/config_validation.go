package config

// validate checks that the final merged [StructuredConfig] satisfies
// the startup invariants: a database DSN and both RSA key paths must be
// present. Token lifetimes and server settings have defaults.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.PrivateKeyPath == "" || cfg.Auth.PublicKeyPath == "" {
		return ErrInvalidAuthConfigs
	}

	return nil
}
