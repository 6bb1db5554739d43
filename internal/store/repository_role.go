package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ingib/site-auth/internal/logger"
	"github.com/ingib/site-auth/models"
)

// roleRepository reads the static role reference data seeded by
// migrations. It never writes.
type roleRepository struct {
	q      Querier
	logger *logger.Logger
}

// NewRoleRepository constructs a [RoleRepository] over the given querier.
func NewRoleRepository(q Querier, logger *logger.Logger) RoleRepository {
	return &roleRepository{
		q:      q,
		logger: logger,
	}
}

// IDByName resolves a role name to its row id.
//
// Error handling:
//   - No matching row → [ErrRoleNotSeeded]: reference data is missing
//     and the deployment is broken. This is deliberately loud.
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *roleRepository) IDByName(ctx context.Context, name models.RoleName) (int64, error) {
	log := logger.FromContext(ctx)

	var roleID int64
	err := r.q.QueryRowContext(ctx, roleIDByName, string(name)).Scan(&roleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Error().Str("func", "*roleRepository.IDByName").Str("role", string(name)).Msg("role row is missing")
			return 0, fmt.Errorf("%w: %s", ErrRoleNotSeeded, name)
		}
		log.Err(err).Str("func", "*roleRepository.IDByName").Msg("error: role query failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return roleID, nil
}

// InfoByID returns the role name and group name for a role id,
// traversing the role → group join table.
func (r *roleRepository) InfoByID(ctx context.Context, roleID int64) (models.RoleName, models.RoleGroupName, error) {
	log := logger.FromContext(ctx)

	var roleName models.RoleName
	var groupName models.RoleGroupName
	err := r.q.QueryRowContext(ctx, roleInfoByID, roleID).Scan(&roleName, &groupName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Error().Str("func", "*roleRepository.InfoByID").Int64("role_id", roleID).Msg("role row is missing")
			return "", "", fmt.Errorf("%w: role id %d", ErrRoleNotSeeded, roleID)
		}
		log.Err(err).Str("func", "*roleRepository.InfoByID").Msg("error: role query failed")
		return "", "", fmt.Errorf("unexpected DB error: %w", err)
	}

	return roleName, groupName, nil
}
