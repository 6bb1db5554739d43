package service

import (
	"github.com/ingib/site-auth/internal/crypto"
	"github.com/ingib/site-auth/internal/logger"
)

type Services struct {
	AuthService    AuthService
	SessionService SessionService
}

func NewServices(db Database, vault crypto.Vault, issuer crypto.Issuer, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(db, vault, issuer, logger),
		SessionService: NewSessionService(db, logger),
	}
}
