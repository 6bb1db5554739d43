package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/ingib/site-auth/internal/logger"
	"github.com/ingib/site-auth/models"
)

// profileRepository is the PostgreSQL-backed implementation of
// [ProfileRepository]. Cookie payload, locations and visit history live
// in JSONB columns and are marshaled at this boundary.
type profileRepository struct {
	q      Querier
	logger *logger.Logger
}

// NewProfileRepository constructs a [ProfileRepository] over the given
// querier.
func NewProfileRepository(q Querier, logger *logger.Logger) ProfileRepository {
	return &profileRepository{
		q:      q,
		logger: logger,
	}
}

// Create persists a new profile and returns it with the server-assigned
// id.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on the key column →
//     [ErrSessionKeyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *profileRepository) Create(ctx context.Context, profile models.Profile) (models.Profile, error) {
	log := logger.FromContext(ctx)

	cookieData, locations, history, err := marshalProfileJSONB(profile)
	if err != nil {
		return models.Profile{}, err
	}

	row := r.q.QueryRowContext(ctx, createProfile,
		profile.Key, profile.CreatedDate, profile.VisitDate, profile.Avatar,
		cookieData, locations, profile.IP, profile.UserAgent, history)

	if err := row.Scan(&profile.ID); err != nil {
		log.Err(err).Str("func", "*profileRepository.Create").Str("key", profile.Key).Msg("error: profile insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Profile{}, ErrSessionKeyExists
		default:
			return models.Profile{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return profile, nil
}

// FindByKey retrieves the profile identified by its session key.
func (r *profileRepository) FindByKey(ctx context.Context, key string) (models.Profile, error) {
	return r.findOne(ctx, "FindByKey", findProfileByKey, key)
}

// FindByKeyForUpdate retrieves the profile identified by its session
// key under a row-level lock. Only meaningful inside an atomic unit;
// outside a transaction the lock is released immediately.
func (r *profileRepository) FindByKeyForUpdate(ctx context.Context, key string) (models.Profile, error) {
	return r.findOne(ctx, "FindByKeyForUpdate", findProfileByKeyForUpdate, key)
}

// FindByID retrieves the profile by its row id.
func (r *profileRepository) FindByID(ctx context.Context, profileID int64) (models.Profile, error) {
	return r.findOne(ctx, "FindByID", findProfileByID, profileID)
}

// CookieDataByKey returns just the session payload for a key, the hot
// path of anonymous session lookups.
func (r *profileRepository) CookieDataByKey(ctx context.Context, key string) (models.CookiePayload, error) {
	log := logger.FromContext(ctx)

	var raw []byte
	if err := r.q.QueryRowContext(ctx, cookieDataByKey, key).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		log.Err(err).Str("func", "*profileRepository.CookieDataByKey").Msg("error: cookie data lookup failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	var payload models.CookiePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return payload, nil
}

// Update persists the profile's mutable columns. The SET list is built
// with squirrel so the JSONB payloads and provenance fields travel in
// one statement.
func (r *profileRepository) Update(ctx context.Context, profile models.Profile) error {
	log := logger.FromContext(ctx)

	cookieData, locations, history, err := marshalProfileJSONB(profile)
	if err != nil {
		return err
	}

	query, args, err := sq.Update("profiles").
		Set("visit_date", profile.VisitDate).
		Set("avatar", profile.Avatar).
		Set("cookie_data", cookieData).
		Set("locations", locations).
		Set("ip", profile.IP).
		Set("user_agent", profile.UserAgent).
		Set("history", history).
		Where(sq.Eq{"id": profile.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.Update").Int64("profile_id", profile.ID).Msg("error: profile update failed")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// Delete removes the profile row. The association row cascades away via
// the foreign key, so no orphan association can survive.
func (r *profileRepository) Delete(ctx context.Context, profileID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.q.ExecContext(ctx, deleteProfile, profileID)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.Delete").Int64("profile_id", profileID).Msg("error: profile delete failed")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// DeleteStale removes every unclaimed profile whose last visit is
// older than cutoff. Association rows cascade away with the profiles.
// Returns the number of profiles removed.
func (r *profileRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.q.ExecContext(ctx, deleteStaleProfiles, cutoff)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.DeleteStale").Msg("error: stale profile sweep failed")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected, nil
}

func (r *profileRepository) findOne(ctx context.Context, op, query string, arg any) (models.Profile, error) {
	log := logger.FromContext(ctx)

	var profile models.Profile
	var cookieData, locations, history []byte

	row := r.q.QueryRowContext(ctx, query, arg)
	if err := row.Scan(&profile.ID, &profile.Key, &profile.CreatedDate, &profile.VisitDate,
		&profile.Avatar, &cookieData, &locations, &profile.IP, &profile.UserAgent, &history); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, ErrProfileNotFound
		}
		log.Err(err).Str("func", "*profileRepository."+op).Msg("error: profile lookup failed")
		return models.Profile{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := unmarshalProfileJSONB(&profile, cookieData, locations, history); err != nil {
		return models.Profile{}, err
	}

	return profile, nil
}

func marshalProfileJSONB(profile models.Profile) (cookieData, locations, history []byte, err error) {
	if cookieData, err = marshalOrEmptyList(profile.CookieData); err != nil {
		return nil, nil, nil, err
	}
	if locations, err = marshalOrEmptyList(profile.Locations); err != nil {
		return nil, nil, nil, err
	}
	if history, err = marshalOrEmptyList(profile.History); err != nil {
		return nil, nil, nil, err
	}
	return cookieData, locations, history, nil
}

func marshalOrEmptyList(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if string(raw) == "null" {
		return []byte("[]"), nil
	}
	return raw, nil
}

func unmarshalProfileJSONB(profile *models.Profile, cookieData, locations, history []byte) error {
	if len(cookieData) > 0 {
		if err := json.Unmarshal(cookieData, &profile.CookieData); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}
	if len(locations) > 0 {
		if err := json.Unmarshal(locations, &profile.Locations); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &profile.History); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}
	return nil
}
