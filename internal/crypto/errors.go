package crypto

import "errors"

var (
	// ErrTokenExpired is returned by [Issuer.Decode] for a token whose
	// signature verified but whose validity window has passed. The
	// payload is not returned; expired claims are untrusted.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenInvalid is returned by [Issuer.Decode] for a token that is
	// malformed, carries a wrong signature, or uses an unexpected
	// signing algorithm.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrBadKeyMaterial is returned when the configured PEM key files
	// cannot be parsed as an RSA key pair.
	ErrBadKeyMaterial = errors.New("invalid token signing key material")
)
