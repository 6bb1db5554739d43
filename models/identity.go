package models

import "time"

// Identity is a registered website actor. It is created once at
// registration and never deleted by the core; logins and email
// confirmation only touch its timestamps and flags.
type Identity struct {
	// ID is the internal unique identifier of the identity.
	// It is not exposed via JSON and is used only at the persistence layer.
	ID int64 `json:"-"`

	// Email is the unique address the actor registered with.
	Email string `json:"email"`

	// PasswordDigest is the bcrypt digest of the actor's password.
	// Never plaintext and never serialized outward.
	PasswordDigest string `json:"-"`

	// RegisterDate is when the account was created.
	RegisterDate time.Time `json:"register_date"`

	// ActivityDate is touched on every successful login and on every
	// authenticated token check.
	ActivityDate time.Time `json:"activity_date"`

	// EmailConfirmed reports whether the actor followed the
	// confirmation link for their address.
	EmailConfirmed bool `json:"email_confirm"`
}

// TableName returns the name of the database table
// associated with the Identity model.
func (i Identity) TableName() string {
	return "website_users"
}
