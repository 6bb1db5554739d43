package models

import "github.com/golang-jwt/jwt/v5"

// Token kinds carried in the "iss" claim. Access and refresh tokens are
// distinguished solely by this tag and by their lifetime.
const (
	TokenKindAccess  = "accessToken"
	TokenKindRefresh = "refreshToken"
)

// Claims is the signed payload of an access or refresh token.
//
// RegisteredClaims carries the standard set: Issuer is the token kind
// tag, Subject is the identity email, IssuedAt/ExpiresAt bound the
// token's validity window. RoleID travels in the custom "rol" claim.
type Claims struct {
	jwt.RegisteredClaims

	// RoleID is the role the subject held when the token was minted.
	RoleID int64 `json:"rol"`
}

// Kind returns the token kind tag from the issuer claim.
func (c Claims) Kind() string {
	return c.Issuer
}

// Email returns the subject claim, the identity's email address.
func (c Claims) Email() string {
	return c.Subject
}

// TokenPair is the authentication material returned to a client after a
// successful register, login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
