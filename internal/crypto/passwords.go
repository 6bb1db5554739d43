package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVault is the bcrypt-backed implementation of [Vault].
//
// bcrypt embeds a per-hash random salt in the digest, so hashing the
// same secret twice yields different digests, and comparison is
// performed by the library in constant time.
type PasswordVault struct {
	cost int
}

// NewPasswordVault constructs a [PasswordVault] with the default bcrypt
// cost factor.
func NewPasswordVault() *PasswordVault {
	return &PasswordVault{cost: bcrypt.DefaultCost}
}

// Hash implements [Vault]. It fails only when the secret exceeds
// bcrypt's 72-byte input limit.
func (v *PasswordVault) Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), v.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// Verify implements [Vault]. Malformed digests compare as false.
func (v *PasswordVault) Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
