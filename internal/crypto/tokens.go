package crypto

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ingib/site-auth/models"
)

// TokenIssuer is the RS256-backed implementation of [Issuer].
//
// The private key signs, the public key verifies; verification can be
// distributed to other services without sharing signing material.
// Access and refresh tokens are distinguished solely by the issuer-tag
// claim and their lifetime. All state is read-only after construction,
// so the issuer is safe for concurrent use.
type TokenIssuer struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey

	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenIssuer constructs a [TokenIssuer] from PEM-encoded RSA key
// material and the configured token lifetimes.
func NewTokenIssuer(privatePEM, publicPEM []byte, accessTTL, refreshTTL time.Duration) (*TokenIssuer, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadKeyMaterial, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadKeyMaterial, err)
	}

	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	return &TokenIssuer{
		privateKey: privateKey,
		publicKey:  publicKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssueAccess implements [Issuer].
func (t *TokenIssuer) IssueAccess(email string, roleID int64) (string, error) {
	return t.issue(models.TokenKindAccess, email, roleID, t.accessTTL)
}

// IssueRefresh implements [Issuer].
func (t *TokenIssuer) IssueRefresh(email string, roleID int64) (string, error) {
	return t.issue(models.TokenKindRefresh, email, roleID, t.refreshTTL)
}

// IssuePair mints a matching access/refresh token pair for the subject.
func (t *TokenIssuer) IssuePair(email string, roleID int64) (models.TokenPair, error) {
	accessToken, err := t.IssueAccess(email, roleID)
	if err != nil {
		return models.TokenPair{}, err
	}

	refreshToken, err := t.IssueRefresh(email, roleID)
	if err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}, nil
}

func (t *TokenIssuer) issue(kind, email string, roleID int64, ttl time.Duration) (string, error) {
	if email == "" {
		return "", errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    kind,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		RoleID: roleID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tokenString, err := token.SignedString(t.privateKey)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return tokenString, nil
}

// Decode implements [Issuer].
//
// Expired tokens map to [ErrTokenExpired]; everything else that fails
// validation maps to [ErrTokenInvalid]. Claims are returned only when
// the signature verified and the token is inside its validity window.
func (t *TokenIssuer) Decode(tokenString string) (models.Claims, error) {
	var claims models.Claims

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return t.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Claims{}, ErrTokenExpired
		}
		return models.Claims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if claims.Subject == "" {
		return models.Claims{}, fmt.Errorf("%w: empty subject", ErrTokenInvalid)
	}

	return claims, nil
}
