package service

import (
	"context"
	"time"

	"github.com/ingib/site-auth/internal/store"
	"github.com/ingib/site-auth/models"
)

// memState is an in-memory stand-in for the relational store. It backs
// the fake ledger used by the service tests: enough semantics to
// exercise the reconciliation flows (uniqueness, cascades, lookups)
// without a database.
type memState struct {
	identities   map[int64]models.Identity
	profiles     map[int64]models.Profile
	associations map[int64]models.Association

	roleIDs   map[models.RoleName]int64
	roleInfo  map[int64][2]string
	nextID    int64
	atomicErr error
}

func newMemState() *memState {
	return &memState{
		identities:   make(map[int64]models.Identity),
		profiles:     make(map[int64]models.Profile),
		associations: make(map[int64]models.Association),
		roleIDs: map[models.RoleName]int64{
			models.RoleGuest: 2,
			models.RoleUser:  4,
		},
		roleInfo: map[int64][2]string{
			2: {string(models.RoleGuest), string(models.RoleGroupGuests)},
			4: {string(models.RoleUser), string(models.RoleGroupUsers)},
		},
	}
}

func (s *memState) id() int64 {
	s.nextID++
	return s.nextID
}

// memDB satisfies Database over a memState. Atomic does not simulate
// rollback; tests that need failure atomicity set atomicErr instead.
type memDB struct {
	state  *memState
	ledger *store.Ledger
}

func newMemDB() *memDB {
	state := newMemState()
	return &memDB{
		state: state,
		ledger: &store.Ledger{
			Roles:        &memRoles{s: state},
			Identities:   &memIdentities{s: state},
			Profiles:     &memProfiles{s: state},
			Associations: &memAssociations{s: state},
		},
	}
}

func (d *memDB) Atomic(ctx context.Context, fn func(ledger *store.Ledger) error) error {
	if d.state.atomicErr != nil {
		return d.state.atomicErr
	}
	return fn(d.ledger)
}

func (d *memDB) Ledger() *store.Ledger {
	return d.ledger
}

type memRoles struct{ s *memState }

func (m *memRoles) IDByName(_ context.Context, name models.RoleName) (int64, error) {
	id, ok := m.s.roleIDs[name]
	if !ok {
		return 0, store.ErrRoleNotSeeded
	}
	return id, nil
}

func (m *memRoles) InfoByID(_ context.Context, roleID int64) (models.RoleName, models.RoleGroupName, error) {
	info, ok := m.s.roleInfo[roleID]
	if !ok {
		return "", "", store.ErrRoleNotSeeded
	}
	return models.RoleName(info[0]), models.RoleGroupName(info[1]), nil
}

type memIdentities struct{ s *memState }

func (m *memIdentities) Create(_ context.Context, identity models.Identity) (models.Identity, error) {
	for _, existing := range m.s.identities {
		if existing.Email == identity.Email {
			return models.Identity{}, store.ErrEmailAlreadyExists
		}
	}
	identity.ID = m.s.id()
	m.s.identities[identity.ID] = identity
	return identity, nil
}

func (m *memIdentities) FindByEmail(_ context.Context, email string) (models.Identity, error) {
	for _, identity := range m.s.identities {
		if identity.Email == email {
			return identity, nil
		}
	}
	return models.Identity{}, store.ErrIdentityNotFound
}

func (m *memIdentities) TouchActivity(_ context.Context, identityID int64, now time.Time) error {
	identity, ok := m.s.identities[identityID]
	if !ok {
		return store.ErrIdentityNotFound
	}
	identity.ActivityDate = now
	m.s.identities[identityID] = identity
	return nil
}

func (m *memIdentities) SetPassword(_ context.Context, email, passwordDigest string) error {
	for id, identity := range m.s.identities {
		if identity.Email == email {
			identity.PasswordDigest = passwordDigest
			m.s.identities[id] = identity
			return nil
		}
	}
	return store.ErrIdentityNotFound
}

func (m *memIdentities) MarkEmailConfirmed(_ context.Context, identityID int64, now time.Time) error {
	identity, ok := m.s.identities[identityID]
	if !ok {
		return store.ErrIdentityNotFound
	}
	identity.EmailConfirmed = true
	identity.ActivityDate = now
	m.s.identities[identityID] = identity
	return nil
}

type memProfiles struct{ s *memState }

func (m *memProfiles) Create(_ context.Context, profile models.Profile) (models.Profile, error) {
	for _, existing := range m.s.profiles {
		if existing.Key == profile.Key {
			return models.Profile{}, store.ErrSessionKeyExists
		}
	}
	profile.ID = m.s.id()
	m.s.profiles[profile.ID] = profile
	return profile, nil
}

func (m *memProfiles) FindByKey(_ context.Context, key string) (models.Profile, error) {
	for _, profile := range m.s.profiles {
		if profile.Key == key {
			return profile, nil
		}
	}
	return models.Profile{}, store.ErrProfileNotFound
}

func (m *memProfiles) FindByKeyForUpdate(ctx context.Context, key string) (models.Profile, error) {
	return m.FindByKey(ctx, key)
}

func (m *memProfiles) FindByID(_ context.Context, profileID int64) (models.Profile, error) {
	profile, ok := m.s.profiles[profileID]
	if !ok {
		return models.Profile{}, store.ErrProfileNotFound
	}
	return profile, nil
}

func (m *memProfiles) CookieDataByKey(ctx context.Context, key string) (models.CookiePayload, error) {
	profile, err := m.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return profile.CookieData, nil
}

func (m *memProfiles) Update(_ context.Context, profile models.Profile) error {
	if _, ok := m.s.profiles[profile.ID]; !ok {
		return store.ErrProfileNotFound
	}
	m.s.profiles[profile.ID] = profile
	return nil
}

func (m *memProfiles) Delete(_ context.Context, profileID int64) error {
	if _, ok := m.s.profiles[profileID]; !ok {
		return store.ErrProfileNotFound
	}
	delete(m.s.profiles, profileID)
	// FK cascade.
	for id, association := range m.s.associations {
		if association.ProfileID == profileID {
			delete(m.s.associations, id)
		}
	}
	return nil
}

func (m *memProfiles) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	for id, profile := range m.s.profiles {
		association, err := (&memAssociations{s: m.s}).FindByProfileID(ctx, id)
		if err != nil || association.Claimed() {
			continue
		}
		if profile.VisitDate.Before(cutoff) {
			_ = m.Delete(ctx, id)
			removed++
		}
	}
	return removed, nil
}

type memAssociations struct{ s *memState }

func (m *memAssociations) Create(_ context.Context, association models.Association) (models.Association, error) {
	for _, existing := range m.s.associations {
		if existing.ProfileID == association.ProfileID {
			return models.Association{}, store.ErrAssociationConflict
		}
	}
	if _, ok := m.s.roleInfo[association.RoleID]; !ok {
		return models.Association{}, store.ErrRoleNotSeeded
	}
	association.ID = m.s.id()
	m.s.associations[association.ID] = association
	return association, nil
}

func (m *memAssociations) FindByProfileID(_ context.Context, profileID int64) (models.Association, error) {
	for _, association := range m.s.associations {
		if association.ProfileID == profileID {
			return association, nil
		}
	}
	return models.Association{}, store.ErrAssociationNotFound
}

func (m *memAssociations) FindByWebsiteIdentityID(_ context.Context, identityID int64) (models.Association, error) {
	for _, association := range m.s.associations {
		if association.WebsiteIdentityID != nil && *association.WebsiteIdentityID == identityID {
			return association, nil
		}
	}
	return models.Association{}, store.ErrAssociationNotFound
}

func (m *memAssociations) Rebind(_ context.Context, association models.Association) error {
	if _, ok := m.s.associations[association.ID]; !ok {
		return store.ErrAssociationNotFound
	}
	m.s.associations[association.ID] = association
	return nil
}
