package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known
// failure conditions. Callers should use [errors.Is] to match against
// these values.
var (
	// ErrEmailAlreadyExists is returned when an identity INSERT fails
	// because the email is already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrSessionKeyExists is returned when a profile INSERT collides
	// with an existing session key.
	ErrSessionKeyExists = errors.New("session key already exists")

	// ErrIdentityNotFound is returned when a lookup matches no
	// website identity.
	ErrIdentityNotFound = errors.New("identity was not found")

	// ErrProfileNotFound is returned when a lookup matches no profile.
	ErrProfileNotFound = errors.New("profile was not found")

	// ErrAssociationNotFound is returned when a profile or identity has
	// no association row. An existing profile without an association is
	// an integrity violation; callers should treat it as corrupt state,
	// not as an empty result.
	ErrAssociationNotFound = errors.New("association was not found")

	// ErrAssociationConflict is returned when an association INSERT or
	// rebind violates one of the (role, profile, identities) uniqueness
	// indexes.
	ErrAssociationConflict = errors.New("association already exists")

	// ErrRoleNotSeeded is returned when a referenced role row is absent.
	// Roles are reference data seeded by migrations; their absence means
	// the deployment is broken and the operation must fail loudly.
	ErrRoleNotSeeded = errors.New("role reference data is not seeded")
)

// Low-level database operation errors. These are returned (or wrapped)
// by repository methods when a SQL-level operation fails before any
// domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver
	// cannot start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommittingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back at
	// this point.
	ErrCommittingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)
