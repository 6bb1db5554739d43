package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ingib/site-auth/internal/crypto"
	"github.com/ingib/site-auth/internal/logger"
	"github.com/ingib/site-auth/internal/store"
	"github.com/ingib/site-auth/internal/utils"
	"github.com/ingib/site-auth/internal/validators"
	"github.com/ingib/site-auth/models"
)

// authService is the concrete implementation of AuthService: the
// reconciliation engine deciding whether to adopt, merge or discard an
// anonymous session when a visitor authenticates.
//
// Every mutating operation runs inside one Database.Atomic unit, so a
// constraint violation at any step rolls the whole graph change back.
// The service holds no mutable state and is safe for concurrent use.
type authService struct {
	db        Database
	vault     crypto.Vault
	issuer    crypto.Issuer
	validator validators.Validator
	logger    *logger.Logger
}

// NewAuthService constructs an AuthService wired to db, the credential
// vault and the token issuer.
func NewAuthService(db Database, vault crypto.Vault, issuer crypto.Issuer, logger *logger.Logger) AuthService {
	return &authService{
		db:        db,
		vault:     vault,
		issuer:    issuer,
		validator: validators.NewCredentialsValidator(),
		logger:    logger,
	}
}

// Register creates a new identity and binds it to a profile.
//
// When sessionKey resolves to a live anonymous session, the existing
// profile and association are adopted: the association's role is
// rewritten to "user" and the fresh identity attached, keeping the
// profile's history. Otherwise a brand-new profile with a fresh session
// key is created alongside the identity.
//
// Returns ErrEmailTaken when the email is already registered; the unit
// rolls back in full and no identity row survives the attempt.
func (a *authService) Register(ctx context.Context, email, password, clientIP, userAgent, sessionKey string) (models.RegisteredUser, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, validators.Credentials{Email: email, Password: password}); err != nil {
		log.Error().Err(err).Str("func", "*authService.Register").Msg("invalid user data provided")
		return models.RegisteredUser{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	digest, err := a.vault.Hash(password)
	if err != nil {
		return models.RegisteredUser{}, fmt.Errorf("password hashing failed: %w", err)
	}

	var registered models.RegisteredUser
	err = a.db.Atomic(ctx, func(ledger *store.Ledger) error {
		roleID, err := ledger.Roles.IDByName(ctx, models.RoleUser)
		if err != nil {
			return err
		}

		now := time.Now()
		newIdentity := models.Identity{
			Email:          email,
			PasswordDigest: digest,
			RegisterDate:   now,
			ActivityDate:   now,
		}

		if sessionKey != "" {
			profile, err := ledger.Profiles.FindByKey(ctx, sessionKey)
			switch {
			case err == nil:
				association, err := ledger.Associations.FindByProfileID(ctx, profile.ID)
				if err != nil && !errors.Is(err, store.ErrAssociationNotFound) {
					return err
				}

				// Only a live anonymous session is adoptable: the
				// association must be unclaimed and the profile must
				// carry a session payload. A key naming somebody
				// else's bound profile must not let this registration
				// repoint their association.
				if err == nil && !association.Claimed() && len(profile.CookieData) > 0 {
					identity, err := ledger.Identities.Create(ctx, newIdentity)
					if err != nil {
						return err
					}

					association.RoleID = roleID
					association.WebsiteIdentityID = &identity.ID
					if err := ledger.Associations.Rebind(ctx, association); err != nil {
						return err
					}

					registered = models.RegisteredUser{Email: identity.Email, RoleID: roleID}
					return nil
				}

				log.Warn().Str("func", "*authService.Register").Msg("session key does not name a live anonymous session, creating fresh profile")
			case !errors.Is(err, store.ErrProfileNotFound):
				return err
			}
			// Unknown or non-adoptable session key: fall through to a
			// fresh triple.
		}

		identity, err := ledger.Identities.Create(ctx, newIdentity)
		if err != nil {
			return err
		}

		profile, err := ledger.Profiles.Create(ctx, models.Profile{
			Key:         utils.NewSessionKey(),
			CreatedDate: now,
			VisitDate:   now,
			IP:          clientIP,
			UserAgent:   userAgent,
		})
		if err != nil {
			return err
		}

		_, err = ledger.Associations.Create(ctx, models.Association{
			RoleID:            roleID,
			ProfileID:         profile.ID,
			WebsiteIdentityID: &identity.ID,
		})
		if err != nil {
			return err
		}

		registered = models.RegisteredUser{Email: identity.Email, RoleID: roleID}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.RegisteredUser{}, ErrEmailTaken
		}
		log.Err(err).Str("func", "*authService.Register").Msg("registration failed")
		return models.RegisteredUser{}, fmt.Errorf("registration failed: %w", err)
	}

	return registered, nil
}

// Login authenticates by email and password.
//
// When sessionKey names a live session other than the one bound to the
// identity, the stray profile is deleted if no identity of any channel
// has ever claimed it; a claimed stray is left untouched and logged.
// On success the identity's activity timestamp and the bound profile's
// provenance are touched in the same unit.
func (a *authService) Login(ctx context.Context, email, password, clientIP, userAgent, sessionKey string) (models.AuthenticatedUser, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, validators.Credentials{Email: email, Password: password}); err != nil {
		log.Error().Err(err).Str("func", "*authService.Login").Msg("invalid user data provided")
		return models.AuthenticatedUser{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var authenticated models.AuthenticatedUser
	err := a.db.Atomic(ctx, func(ledger *store.Ledger) error {
		identity, err := ledger.Identities.FindByEmail(ctx, email)
		if err != nil {
			return err
		}

		if !a.vault.Verify(password, identity.PasswordDigest) {
			return ErrWrongCredentials
		}

		association, err := a.reconcileAndTouch(ctx, ledger, identity, clientIP, userAgent, sessionKey)
		if err != nil {
			return err
		}

		authenticated = models.AuthenticatedUser{
			Email:          identity.Email,
			RoleID:         association.RoleID,
			PasswordDigest: identity.PasswordDigest,
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrIdentityNotFound):
			return models.AuthenticatedUser{}, ErrIdentityNotFound
		case errors.Is(err, ErrWrongCredentials):
			return models.AuthenticatedUser{}, ErrWrongCredentials
		}
		log.Err(err).Str("func", "*authService.Login").Msg("login failed")
		return models.AuthenticatedUser{}, fmt.Errorf("login failed: %w", err)
	}

	return authenticated, nil
}

// CurrentUser resolves the bearer of accessToken and re-runs the login
// touch path by email. Every authenticated call thereby refreshes the
// account's liveness.
func (a *authService) CurrentUser(ctx context.Context, accessToken, clientIP, userAgent string) (models.AuthenticatedUser, error) {
	claims, err := a.decode(accessToken)
	if err != nil {
		return models.AuthenticatedUser{}, err
	}

	return a.touchByEmail(ctx, claims.Email(), clientIP, userAgent)
}

// CurrentUserData resolves the bearer of accessToken and returns the
// enriched account view: bound profile id, role and role-group names,
// avatar and activity timestamp.
func (a *authService) CurrentUserData(ctx context.Context, accessToken, clientIP, userAgent string) (models.AccountInfo, error) {
	log := logger.FromContext(ctx)

	claims, err := a.decode(accessToken)
	if err != nil {
		return models.AccountInfo{}, err
	}

	var info models.AccountInfo
	err = a.db.Atomic(ctx, func(ledger *store.Ledger) error {
		identity, err := ledger.Identities.FindByEmail(ctx, claims.Email())
		if err != nil {
			return err
		}

		association, err := ledger.Associations.FindByWebsiteIdentityID(ctx, identity.ID)
		if err != nil {
			return err
		}

		profile, err := ledger.Profiles.FindByID(ctx, association.ProfileID)
		if err != nil {
			return err
		}

		roleName, groupName, err := ledger.Roles.InfoByID(ctx, association.RoleID)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := ledger.Identities.TouchActivity(ctx, identity.ID, now); err != nil {
			return err
		}

		profile.TouchProvenance(clientIP, userAgent, now)
		if err := ledger.Profiles.Update(ctx, profile); err != nil {
			return err
		}

		info = models.AccountInfo{
			ProfileID:      profile.ID,
			Email:          identity.Email,
			EmailConfirmed: identity.EmailConfirmed,
			Role:           roleName,
			RoleGroup:      groupName,
			Avatar:         profile.Avatar,
			ActivityDate:   now,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			return models.AccountInfo{}, ErrIdentityNotFound
		}
		log.Err(err).Str("func", "*authService.CurrentUserData").Msg("account data lookup failed")
		return models.AccountInfo{}, fmt.Errorf("account data lookup failed: %w", err)
	}

	return info, nil
}

// Refresh resolves the bearer of refreshToken, touches the account the
// same way a login would, and mints a fresh access/refresh pair.
func (a *authService) Refresh(ctx context.Context, refreshToken, clientIP, userAgent string) (models.TokenPair, error) {
	claims, err := a.decode(refreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	user, err := a.touchByEmail(ctx, claims.Email(), clientIP, userAgent)
	if err != nil {
		return models.TokenPair{}, err
	}

	return a.Tokens(user.Email, user.RoleID)
}

// ChangePassword verifies currentPassword for the bearer of accessToken
// and overwrites the stored digest atomically. Returns the email whose
// password changed.
func (a *authService) ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) (string, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, validators.Credentials{Password: newPassword}, validators.FieldPassword); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	claims, err := a.decode(accessToken)
	if err != nil {
		return "", err
	}

	digest, err := a.vault.Hash(newPassword)
	if err != nil {
		return "", fmt.Errorf("password hashing failed: %w", err)
	}

	err = a.db.Atomic(ctx, func(ledger *store.Ledger) error {
		identity, err := ledger.Identities.FindByEmail(ctx, claims.Email())
		if err != nil {
			return err
		}

		if !a.vault.Verify(currentPassword, identity.PasswordDigest) {
			return ErrWrongCredentials
		}

		if err := ledger.Identities.SetPassword(ctx, identity.Email, digest); err != nil {
			return err
		}

		return ledger.Identities.TouchActivity(ctx, identity.ID, time.Now())
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrIdentityNotFound):
			return "", ErrIdentityNotFound
		case errors.Is(err, ErrWrongCredentials):
			return "", ErrWrongCredentials
		}
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("password change failed")
		return "", fmt.Errorf("password change failed: %w", err)
	}

	return claims.Email(), nil
}

// ConfirmEmail marks the bearer's email confirmed when confirmationKey
// equals the session key of the profile bound to the bearer's identity.
// An already confirmed email is reported distinctly from success.
func (a *authService) ConfirmEmail(ctx context.Context, accessToken, confirmationKey, clientIP, userAgent string) error {
	log := logger.FromContext(ctx)

	claims, err := a.decode(accessToken)
	if err != nil {
		return err
	}

	err = a.db.Atomic(ctx, func(ledger *store.Ledger) error {
		identity, err := ledger.Identities.FindByEmail(ctx, claims.Email())
		if err != nil {
			return err
		}

		association, err := ledger.Associations.FindByWebsiteIdentityID(ctx, identity.ID)
		if err != nil {
			return err
		}

		profile, err := ledger.Profiles.FindByID(ctx, association.ProfileID)
		if err != nil {
			return err
		}

		if profile.Key != confirmationKey {
			return ErrConfirmationNotFound
		}
		if identity.EmailConfirmed {
			return ErrEmailAlreadyConfirmed
		}

		now := time.Now()
		if err := ledger.Identities.MarkEmailConfirmed(ctx, identity.ID, now); err != nil {
			return err
		}

		profile.TouchProvenance(clientIP, userAgent, now)
		return ledger.Profiles.Update(ctx, profile)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrIdentityNotFound):
			return ErrIdentityNotFound
		case errors.Is(err, ErrConfirmationNotFound), errors.Is(err, ErrEmailAlreadyConfirmed):
			return err
		}
		log.Err(err).Str("func", "*authService.ConfirmEmail").Msg("email confirmation failed")
		return fmt.Errorf("email confirmation failed: %w", err)
	}

	return nil
}

// Tokens mints the access/refresh pair handed to a client after a
// successful register, login or refresh.
func (a *authService) Tokens(email string, roleID int64) (models.TokenPair, error) {
	pair, err := a.issuer.IssuePair(email, roleID)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("token issuance failed: %w", err)
	}

	return pair, nil
}

// decode maps the issuer's sentinels onto the service taxonomy. No
// unverified claim ever leaves this method.
func (a *authService) decode(token string) (models.Claims, error) {
	claims, err := a.issuer.Decode(token)
	if err != nil {
		if errors.Is(err, crypto.ErrTokenExpired) {
			return models.Claims{}, ErrTokenExpired
		}
		return models.Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// touchByEmail re-runs the login touch path without credential checks:
// activity timestamp, provenance, history. Shared by CurrentUser and
// Refresh.
func (a *authService) touchByEmail(ctx context.Context, email, clientIP, userAgent string) (models.AuthenticatedUser, error) {
	log := logger.FromContext(ctx)

	var authenticated models.AuthenticatedUser
	err := a.db.Atomic(ctx, func(ledger *store.Ledger) error {
		identity, err := ledger.Identities.FindByEmail(ctx, email)
		if err != nil {
			return err
		}

		association, err := a.reconcileAndTouch(ctx, ledger, identity, clientIP, userAgent, "")
		if err != nil {
			return err
		}

		authenticated = models.AuthenticatedUser{
			Email:          identity.Email,
			RoleID:         association.RoleID,
			PasswordDigest: identity.PasswordDigest,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			return models.AuthenticatedUser{}, ErrIdentityNotFound
		}
		log.Err(err).Str("func", "*authService.touchByEmail").Msg("account touch failed")
		return models.AuthenticatedUser{}, fmt.Errorf("account touch failed: %w", err)
	}

	return authenticated, nil
}

// reconcileAndTouch loads the identity's association and bound profile,
// resolves a stray anonymous session if one was supplied, and records
// fresh activity and provenance. Must run inside the caller's atomic
// unit.
func (a *authService) reconcileAndTouch(ctx context.Context, ledger *store.Ledger, identity models.Identity, clientIP, userAgent, sessionKey string) (models.Association, error) {
	log := logger.FromContext(ctx)

	association, err := ledger.Associations.FindByWebsiteIdentityID(ctx, identity.ID)
	if err != nil {
		return models.Association{}, err
	}

	profile, err := ledger.Profiles.FindByID(ctx, association.ProfileID)
	if err != nil {
		return models.Association{}, err
	}

	if sessionKey != "" && sessionKey != profile.Key {
		stray, err := ledger.Profiles.FindByKey(ctx, sessionKey)
		switch {
		case err == nil:
			strayAssociation, err := ledger.Associations.FindByProfileID(ctx, stray.ID)
			if err != nil {
				return models.Association{}, err
			}
			if strayAssociation.Claimed() {
				// Cross-session state claimed by some identity is
				// ambiguous. Leave it alone.
				log.Warn().
					Str("func", "*authService.reconcileAndTouch").
					Int64("association_id", strayAssociation.ID).
					Msg("stray session is claimed, not merging")
			} else if err := ledger.Profiles.Delete(ctx, stray.ID); err != nil {
				return models.Association{}, err
			}
		case !errors.Is(err, store.ErrProfileNotFound):
			return models.Association{}, err
		}
	}

	now := time.Now()
	if err := ledger.Identities.TouchActivity(ctx, identity.ID, now); err != nil {
		return models.Association{}, err
	}

	profile.TouchProvenance(clientIP, userAgent, now)
	if err := ledger.Profiles.Update(ctx, profile); err != nil {
		return models.Association{}, err
	}

	return association, nil
}
