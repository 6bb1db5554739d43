package crypto

import "github.com/ingib/site-auth/models"

// Vault hashes and verifies user credentials.
type Vault interface {
	// Hash derives a salted one-way digest of secret. Two calls with
	// the same secret produce different digests.
	Hash(secret string) (string, error)

	// Verify reports whether secret matches digest. It returns false,
	// never an error, on a malformed digest.
	Verify(secret, digest string) bool
}

// Issuer mints and validates signed access and refresh tokens.
type Issuer interface {
	IssueAccess(email string, roleID int64) (string, error)
	IssueRefresh(email string, roleID int64) (string, error)
	IssuePair(email string, roleID int64) (models.TokenPair, error)

	// Decode verifies the signature and validity window of token and
	// returns its claims. Failures are reported via the sentinel errors
	// ErrTokenExpired and ErrTokenInvalid; no unverified payload is
	// ever returned.
	Decode(token string) (models.Claims, error)
}
