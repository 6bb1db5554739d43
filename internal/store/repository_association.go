package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/ingib/site-auth/internal/logger"
	"github.com/ingib/site-auth/models"
)

// associationRepository is the PostgreSQL-backed implementation of
// [AssociationRepository]. The partial unique indexes on the
// users_associations table are the single source of truth for the
// one-association-per-profile and one-profile-per-identity rules;
// this layer only translates their violations into sentinels.
type associationRepository struct {
	q      Querier
	logger *logger.Logger
}

// NewAssociationRepository constructs an [AssociationRepository] over
// the given querier.
func NewAssociationRepository(q Querier, logger *logger.Logger) AssociationRepository {
	return &associationRepository{
		q:      q,
		logger: logger,
	}
}

// Create inserts a new association row and returns it with the
// server-assigned id.
//
// Error handling:
//   - unique_violation (23505) → [ErrAssociationConflict]: the profile
//     or the identity already has an association.
//   - foreign_key_violation (23503) → [ErrRoleNotSeeded]: the role id
//     does not resolve, meaning migrations did not run.
func (r *associationRepository) Create(ctx context.Context, association models.Association) (models.Association, error) {
	log := logger.FromContext(ctx)

	row := r.q.QueryRowContext(ctx, createAssociation,
		association.RoleID, association.ProfileID,
		association.WebsiteIdentityID, association.WebappIdentityID)

	if err := row.Scan(&association.ID); err != nil {
		log.Err(err).Str("func", "*associationRepository.Create").Int64("profile_id", association.ProfileID).Msg("error: association insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Association{}, ErrAssociationConflict
		case pgerrcode.ForeignKeyViolation:
			return models.Association{}, ErrRoleNotSeeded
		default:
			return models.Association{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return association, nil
}

// FindByProfileID retrieves the association owned by the given profile.
func (r *associationRepository) FindByProfileID(ctx context.Context, profileID int64) (models.Association, error) {
	return r.findOne(ctx, "FindByProfileID", findAssociationByProfileID, profileID)
}

// FindByWebsiteIdentityID retrieves the association claimed by the
// given website identity, if any.
func (r *associationRepository) FindByWebsiteIdentityID(ctx context.Context, identityID int64) (models.Association, error) {
	return r.findOne(ctx, "FindByWebsiteIdentityID", findAssociationByWebsiteID, identityID)
}

// Rebind repoints an existing association at a new profile, role and
// identity in one statement. Used when a registering or logging-in
// identity adopts the caller's current session.
func (r *associationRepository) Rebind(ctx context.Context, association models.Association) error {
	log := logger.FromContext(ctx)

	result, err := r.q.ExecContext(ctx, rebindAssociation,
		association.RoleID, association.ProfileID,
		association.WebsiteIdentityID, association.WebappIdentityID,
		association.ID)
	if err != nil {
		log.Err(err).Str("func", "*associationRepository.Rebind").Int64("association_id", association.ID).Msg("error: association rebind failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return ErrAssociationConflict
		default:
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrAssociationNotFound
	}

	return nil
}

func (r *associationRepository) findOne(ctx context.Context, op, query string, arg any) (models.Association, error) {
	log := logger.FromContext(ctx)

	var association models.Association
	row := r.q.QueryRowContext(ctx, query, arg)
	if err := row.Scan(&association.ID, &association.RoleID, &association.ProfileID,
		&association.WebsiteIdentityID, &association.WebappIdentityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Association{}, ErrAssociationNotFound
		}
		log.Err(err).Str("func", "*associationRepository."+op).Msg("error: association lookup failed")
		return models.Association{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return association, nil
}
