// Package app contains shared application-layer constants used across the
// site-auth server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidAuthorizationHeader is returned when a token-bound endpoint
	// is called without a well-formed "Bearer <token>" Authorization header.
	MsgInvalidAuthorizationHeader = "invalid authorization header"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgSessionError is returned when an anonymous session cannot be
	// created or refreshed.
	MsgSessionError = "session error"

	// MsgServiceUnavailable is returned when the failure is transient
	// (connection loss, deadlock) and the client may retry.
	MsgServiceUnavailable = "service temporarily unavailable"
)
