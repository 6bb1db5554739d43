package service

import "errors"

// Failure taxonomy surfaced to the boundary layer. Every fallible
// operation returns one of these sentinels (possibly wrapped) or a
// wrapped storage error for unexpected conditions; raw driver errors
// never cross this package's boundary.
var (
	// ErrInvalidDataProvided is returned when a required input field is
	// empty or malformed before any storage work happens.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrEmailTaken is returned when a registration collides with an
	// already registered email. Nothing is persisted.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrWrongCredentials is returned when the email/password pair does
	// not authenticate. The identity's activity timestamp is untouched.
	ErrWrongCredentials = errors.New("incorrect email or password")

	// ErrIdentityNotFound is returned when the referenced identity does
	// not exist, including the case where it vanished after a token was
	// issued for it.
	ErrIdentityNotFound = errors.New("identity was not found")

	// ErrSessionNotFound is returned when a supplied session key does
	// not resolve to a live session.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrInvalidToken is returned when a bearer token fails signature
	// or structural validation.
	ErrInvalidToken = errors.New("token is invalid")

	// ErrTokenExpired is returned when a bearer token is well-formed
	// but past its validity window.
	ErrTokenExpired = errors.New("token is expired")

	// ErrEmailAlreadyConfirmed is returned when a confirmation key
	// resolves to an identity whose email was confirmed earlier.
	// Distinct from success so the boundary can say so.
	ErrEmailAlreadyConfirmed = errors.New("email is already confirmed")

	// ErrConfirmationNotFound is returned when the confirmation key does
	// not match the current user's bound session.
	ErrConfirmationNotFound = errors.New("confirmation key does not match")
)
