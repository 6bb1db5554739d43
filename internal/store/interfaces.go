package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/ingib/site-auth/models"
)

// Querier is the subset of database/sql operations repositories need.
// Both *sql.DB and *sql.Tx implement it, so the same repository code
// runs standalone or inside an atomic unit of work.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RoleRepository reads the static role reference data. Roles are
// seeded by migrations and never written at runtime.
type RoleRepository interface {
	// IDByName resolves a role name to its row id. A missing role means
	// unseeded reference data and is reported as ErrRoleNotSeeded.
	IDByName(ctx context.Context, name models.RoleName) (int64, error)

	// InfoByID returns the role name and its group name for an id.
	InfoByID(ctx context.Context, roleID int64) (models.RoleName, models.RoleGroupName, error)
}

// IdentityRepository persists registered website identities.
type IdentityRepository interface {
	Create(ctx context.Context, identity models.Identity) (models.Identity, error)
	FindByEmail(ctx context.Context, email string) (models.Identity, error)
	TouchActivity(ctx context.Context, identityID int64, now time.Time) error
	SetPassword(ctx context.Context, email, passwordDigest string) error
	MarkEmailConfirmed(ctx context.Context, identityID int64, now time.Time) error
}

// ProfileRepository persists provenance profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile models.Profile) (models.Profile, error)
	FindByKey(ctx context.Context, key string) (models.Profile, error)

	// FindByKeyForUpdate loads the profile row under a row-level lock,
	// serialising concurrent refreshes of the same session key. Must be
	// called inside an atomic unit.
	FindByKeyForUpdate(ctx context.Context, key string) (models.Profile, error)

	FindByID(ctx context.Context, profileID int64) (models.Profile, error)
	CookieDataByKey(ctx context.Context, key string) (models.CookiePayload, error)

	// Update persists the profile's mutable state: payload, avatar,
	// locations and provenance (ip, user agent, visit date, history).
	Update(ctx context.Context, profile models.Profile) error

	// Delete removes the profile; the association cascades away with it.
	Delete(ctx context.Context, profileID int64) error

	// DeleteStale removes unclaimed profiles whose last visit is older
	// than cutoff, returning how many were removed.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// AssociationRepository persists the profile/role/identity bindings.
type AssociationRepository interface {
	Create(ctx context.Context, association models.Association) (models.Association, error)
	FindByProfileID(ctx context.Context, profileID int64) (models.Association, error)
	FindByWebsiteIdentityID(ctx context.Context, identityID int64) (models.Association, error)

	// Rebind rewrites an existing association in place: new role, new
	// profile, website identity attached. Used when a registration or a
	// login adopts an anonymous session. The association keeps its id.
	Rebind(ctx context.Context, association models.Association) error
}
