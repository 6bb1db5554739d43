package models

import "time"

// RegisteredUser is the result of a successful registration: the
// identity's email and the role it was bound with.
type RegisteredUser struct {
	Email  string `json:"email"`
	RoleID int64  `json:"role_id"`
}

// AuthenticatedUser is the result of a successful login or token check.
// PasswordDigest is carried only for internal reuse (e.g. the
// change-password flow re-verifies against it) and is never serialized.
type AuthenticatedUser struct {
	Email          string `json:"email"`
	RoleID         int64  `json:"role_id"`
	PasswordDigest string `json:"-"`
}

// AccountInfo is the enriched account view returned by the /me endpoint:
// the bound profile's id plus role and role-group names resolved from
// the reference data.
type AccountInfo struct {
	ProfileID      int64         `json:"id"`
	Email          string        `json:"email"`
	EmailConfirmed bool          `json:"email_confirm"`
	Role           RoleName      `json:"role"`
	RoleGroup      RoleGroupName `json:"g_roles"`
	Avatar         *string       `json:"avatar"`
	ActivityDate   time.Time     `json:"activity_date"`
}

// SessionSnapshot is the current payload of an anonymous session as
// returned to the boundary layer.
type SessionSnapshot struct {
	SessionKey string         `json:"new_session_id"`
	Payload    map[string]any `json:"session"`

	// Created reports whether this call minted a fresh session rather
	// than touching an existing one.
	Created bool `json:"-"`
}
