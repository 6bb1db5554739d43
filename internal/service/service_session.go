package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ingib/site-auth/internal/logger"
	"github.com/ingib/site-auth/internal/store"
	"github.com/ingib/site-auth/internal/utils"
	"github.com/ingib/site-auth/models"
)

// sessionService is the concrete implementation of SessionService.
// Anonymous sessions are a Profile plus a guest Association created as
// one unit; the opaque session key is the only handle the client holds.
type sessionService struct {
	db     Database
	logger *logger.Logger
}

// NewSessionService constructs a SessionService over db.
func NewSessionService(db Database, logger *logger.Logger) SessionService {
	return &sessionService{
		db:     db,
		logger: logger,
	}
}

// guestPayload is the initial session payload handed to a fresh
// anonymous visitor. The frontend owns the entry shape; the engine only
// seeds it and rewrites two fields on refresh.
func guestPayload() models.CookiePayload {
	return models.CookiePayload{{
		"user_id":     nil,
		"name":        "Иван",
		"custom_data": "new",
	}}
}

// Create mints a fresh anonymous session. The guest role lookup,
// profile insert and association insert commit together; a key
// collision or missing role row rolls everything back.
func (s *sessionService) Create(ctx context.Context, clientIP, userAgent string) (string, error) {
	log := logger.FromContext(ctx)

	key := utils.NewSessionKey()
	now := time.Now()

	err := s.db.Atomic(ctx, func(ledger *store.Ledger) error {
		roleID, err := ledger.Roles.IDByName(ctx, models.RoleGuest)
		if err != nil {
			return err
		}

		profile, err := ledger.Profiles.Create(ctx, models.Profile{
			Key:         key,
			CreatedDate: now,
			VisitDate:   now,
			CookieData:  guestPayload(),
			IP:          clientIP,
			UserAgent:   userAgent,
		})
		if err != nil {
			return err
		}

		_, err = ledger.Associations.Create(ctx, models.Association{
			RoleID:    roleID,
			ProfileID: profile.ID,
		})
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*sessionService.Create").Msg("session creation failed")
		return "", fmt.Errorf("session creation failed: %w", err)
	}

	log.Debug().Str("func", "*sessionService.Create").Str("session_key", key).Msg("session created")
	return key, nil
}

// Get returns the current payload of a session without touching it.
func (s *sessionService) Get(ctx context.Context, sessionKey string) (models.SessionSnapshot, error) {
	log := logger.FromContext(ctx)

	payload, err := s.db.Ledger().Profiles.CookieDataByKey(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return models.SessionSnapshot{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "*sessionService.Get").Msg("session lookup failed")
		return models.SessionSnapshot{}, fmt.Errorf("session lookup failed: %w", err)
	}
	if len(payload) == 0 {
		return models.SessionSnapshot{}, ErrSessionNotFound
	}

	return models.SessionSnapshot{
		SessionKey: sessionKey,
		Payload:    payload[0],
	}, nil
}

// Refresh applies the touch transform to the session payload and
// records fresh provenance, as one atomic read-modify-write. The
// profile row is locked for the duration, so two concurrent refreshes
// of one key serialise instead of losing an update.
func (s *sessionService) Refresh(ctx context.Context, sessionKey, clientIP, userAgent string) (models.SessionSnapshot, error) {
	log := logger.FromContext(ctx)

	var snapshot models.SessionSnapshot
	err := s.db.Atomic(ctx, func(ledger *store.Ledger) error {
		profile, err := ledger.Profiles.FindByKeyForUpdate(ctx, sessionKey)
		if err != nil {
			return err
		}
		if len(profile.CookieData) == 0 {
			return store.ErrProfileNotFound
		}

		entry := profile.CookieData[0]
		entry["custom_data"] = "updated"
		if name, ok := entry["name"].(string); ok {
			entry["name"] = name + "_new"
		}
		profile.CookieData[0] = entry

		profile.TouchProvenance(clientIP, userAgent, time.Now())

		if err := ledger.Profiles.Update(ctx, profile); err != nil {
			return err
		}

		snapshot = models.SessionSnapshot{
			SessionKey: sessionKey,
			Payload:    entry,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return models.SessionSnapshot{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "*sessionService.Refresh").Msg("session refresh failed")
		return models.SessionSnapshot{}, fmt.Errorf("session refresh failed: %w", err)
	}

	return snapshot, nil
}

// CreateOrTouch implements the boundary contract: an absent key mints a
// new session and returns its initial payload, a known key is
// refreshed, an unknown key is rejected.
func (s *sessionService) CreateOrTouch(ctx context.Context, sessionKey, clientIP, userAgent string) (models.SessionSnapshot, error) {
	if sessionKey == "" {
		key, err := s.Create(ctx, clientIP, userAgent)
		if err != nil {
			return models.SessionSnapshot{}, err
		}

		snapshot, err := s.Get(ctx, key)
		if err != nil {
			return models.SessionSnapshot{}, err
		}
		snapshot.Created = true
		return snapshot, nil
	}

	return s.Refresh(ctx, sessionKey, clientIP, userAgent)
}
