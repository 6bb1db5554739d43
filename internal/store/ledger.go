package store

import (
	"context"
	"fmt"

	"github.com/ingib/site-auth/internal/logger"
)

// Ledger bundles the relational repositories over one [Querier]. A
// ledger built on the shared pool serves plain reads; a ledger built on
// a transaction makes every repository call part of one atomic unit.
type Ledger struct {
	Roles        RoleRepository
	Identities   IdentityRepository
	Profiles     ProfileRepository
	Associations AssociationRepository
}

// NewLedger constructs a [Ledger] whose repositories all run against q.
func NewLedger(q Querier, log *logger.Logger) *Ledger {
	return &Ledger{
		Roles:        NewRoleRepository(q, log),
		Identities:   NewIdentityRepository(q, log),
		Profiles:     NewProfileRepository(q, log),
		Associations: NewAssociationRepository(q, log),
	}
}

// Ledger returns a non-transactional ledger over the shared pool.
func (db *DB) Ledger() *Ledger {
	return NewLedger(db.DB, db.logger)
}

// Atomic runs fn inside a single database transaction. Every
// repository call made through the ledger passed to fn commits together
// or rolls back in full; no partial identity/profile/association graph
// survives an error.
func (db *DB) Atomic(ctx context.Context, fn func(ledger *Ledger) error) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "DB.Atomic").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(NewLedger(tx, db.logger)); err != nil {
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "DB.Atomic").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, commitErr)
	}

	return nil
}

// Classify reports whether err describes a transient condition worth a
// caller-driven retry.
func (db *DB) Classify(err error) ErrorClassification {
	return db.errorClassificator.Classify(err)
}
