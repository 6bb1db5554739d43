package service

import (
	"context"

	"github.com/ingib/site-auth/internal/store"
	"github.com/ingib/site-auth/models"
)

// Database is the storage entry point the services depend on.
// *store.DB satisfies it; tests substitute a fake that hands out
// ledgers built on function-field mocks.
type Database interface {
	// Atomic runs fn as one all-or-nothing unit of work.
	Atomic(ctx context.Context, fn func(ledger *store.Ledger) error) error

	// Ledger returns a non-transactional ledger for plain reads.
	Ledger() *store.Ledger
}

// AuthService is the reconciliation engine: the single entry point for
// register, login and token-bound operations. Every mutating operation
// runs in one atomic unit; on any failure no partial
// identity/profile/association graph survives.
type AuthService interface {
	// Register creates a new identity. When sessionKey resolves to a
	// live anonymous session its profile and association are adopted in
	// place (role upgraded, identity attached); otherwise a fresh
	// profile and association are minted. Duplicate email yields
	// ErrEmailTaken.
	Register(ctx context.Context, email, password, clientIP, userAgent, sessionKey string) (models.RegisteredUser, error)

	// Login authenticates by email and password, reconciles a stray
	// anonymous session if one is supplied, and touches the identity's
	// activity and its bound profile's provenance.
	Login(ctx context.Context, email, password, clientIP, userAgent, sessionKey string) (models.AuthenticatedUser, error)

	// CurrentUser resolves the bearer of accessToken and re-runs the
	// login touch path, doubling as a liveness refresh.
	CurrentUser(ctx context.Context, accessToken, clientIP, userAgent string) (models.AuthenticatedUser, error)

	// CurrentUserData resolves the bearer and returns the enriched
	// account view with role and role-group names.
	CurrentUserData(ctx context.Context, accessToken, clientIP, userAgent string) (models.AccountInfo, error)

	// Refresh resolves the bearer of refreshToken, touches the account,
	// and mints a fresh token pair.
	Refresh(ctx context.Context, refreshToken, clientIP, userAgent string) (models.TokenPair, error)

	// ChangePassword verifies currentPassword for the bearer of
	// accessToken and overwrites the stored digest. Returns the
	// affected email.
	ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) (string, error)

	// ConfirmEmail marks the bearer's email confirmed when
	// confirmationKey equals the bound profile's session key.
	ConfirmEmail(ctx context.Context, accessToken, confirmationKey, clientIP, userAgent string) error

	// Tokens mints the access/refresh pair handed out after a
	// successful register or login.
	Tokens(email string, roleID int64) (models.TokenPair, error)
}

// SessionService manages anonymous guest sessions keyed by the opaque
// session key.
type SessionService interface {
	// Create mints a fresh session: profile plus guest association in
	// one atomic unit. Returns the new session key.
	Create(ctx context.Context, clientIP, userAgent string) (string, error)

	// Get returns the current payload for a key without touching it.
	Get(ctx context.Context, sessionKey string) (models.SessionSnapshot, error)

	// Refresh applies the payload touch transform, updates provenance
	// and history, and returns the new snapshot. The read-modify-write
	// is serialised per key.
	Refresh(ctx context.Context, sessionKey, clientIP, userAgent string) (models.SessionSnapshot, error)

	// CreateOrTouch is the boundary contract: no key mints a session,
	// a known key refreshes it, an unknown key is ErrSessionNotFound.
	CreateOrTouch(ctx context.Context, sessionKey, clientIP, userAgent string) (models.SessionSnapshot, error)
}
