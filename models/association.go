package models

// Association binds a Profile to a Role and to at most one identity of
// each channel. A profile has at most one association; deleting the
// profile cascades here. Uniqueness of (role, profile, website, webapp)
// is enforced by the database for each combination of present identity
// references.
type Association struct {
	ID        int64 `json:"-"`
	RoleID    int64 `json:"role_id"`
	ProfileID int64 `json:"-"`

	// WebsiteIdentityID references the website identity that claimed
	// this profile, nil while the profile is anonymous.
	WebsiteIdentityID *int64 `json:"-"`

	// WebappIdentityID references the second-channel identity (e.g. a
	// messenger-bot account), nil when unclaimed on that channel.
	WebappIdentityID *int64 `json:"-"`
}

// TableName returns the name of the database table
// associated with the Association model.
func (a Association) TableName() string {
	return "users_associations"
}

// Claimed reports whether any identity of any channel has claimed the
// associated profile. Unclaimed stray sessions are safe to discard when
// a login merges them away.
func (a Association) Claimed() bool {
	return a.WebsiteIdentityID != nil || a.WebappIdentityID != nil
}
