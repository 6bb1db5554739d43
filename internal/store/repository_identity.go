package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/ingib/site-auth/internal/logger"
	"github.com/ingib/site-auth/models"
)

// identityRepository is the PostgreSQL-backed implementation of
// [IdentityRepository]. It handles identity creation and lookup against
// the "website_users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext]
// for structured, request-level tracing of database interactions.
type identityRepository struct {
	q      Querier
	logger *logger.Logger
}

// NewIdentityRepository constructs an [IdentityRepository] over the
// given querier.
func NewIdentityRepository(q Querier, logger *logger.Logger) IdentityRepository {
	return &identityRepository{
		q:      q,
		logger: logger,
	}
}

// Create persists a new identity record and returns the fully populated
// [models.Identity] with server-assigned fields.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *identityRepository) Create(ctx context.Context, identity models.Identity) (models.Identity, error) {
	log := logger.FromContext(ctx)

	row := r.q.QueryRowContext(ctx, createIdentity,
		identity.Email, identity.PasswordDigest, identity.RegisterDate, identity.ActivityDate)

	if err := row.Scan(&identity.ID, &identity.Email, &identity.PasswordDigest,
		&identity.RegisterDate, &identity.ActivityDate, &identity.EmailConfirmed); err != nil {
		log.Err(err).Str("func", "*identityRepository.Create").Str("email", identity.Email).Msg("error: identity insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Identity{}, ErrEmailAlreadyExists
		default:
			return models.Identity{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return identity, nil
}

// FindByEmail retrieves the identity registered under email.
//
// Error handling:
//   - No matching row → [ErrIdentityNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *identityRepository) FindByEmail(ctx context.Context, email string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	var found models.Identity
	row := r.q.QueryRowContext(ctx, findIdentityByEmail, email)

	if err := row.Scan(&found.ID, &found.Email, &found.PasswordDigest,
		&found.RegisterDate, &found.ActivityDate, &found.EmailConfirmed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Identity{}, ErrIdentityNotFound
		}
		log.Err(err).Str("func", "*identityRepository.FindByEmail").Msg("error: identity lookup failed")
		return models.Identity{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// TouchActivity sets the identity's last-activity timestamp.
func (r *identityRepository) TouchActivity(ctx context.Context, identityID int64, now time.Time) error {
	return r.exec(ctx, "TouchActivity", touchIdentityActivity, identityID, now)
}

// SetPassword overwrites the password digest of the identity registered
// under email.
func (r *identityRepository) SetPassword(ctx context.Context, email, passwordDigest string) error {
	return r.exec(ctx, "SetPassword", setIdentityPassword, email, passwordDigest)
}

// MarkEmailConfirmed flips the email-confirmed flag and touches the
// activity timestamp in the same statement.
func (r *identityRepository) MarkEmailConfirmed(ctx context.Context, identityID int64, now time.Time) error {
	return r.exec(ctx, "MarkEmailConfirmed", confirmIdentityEmail, identityID, now)
}

func (r *identityRepository) exec(ctx context.Context, op, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*identityRepository."+op).Msg("error: identity update failed")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrIdentityNotFound
	}

	return nil
}
