package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ingib/site-auth/internal/config"
	"github.com/ingib/site-auth/internal/crypto"
	"github.com/ingib/site-auth/internal/handler"
	"github.com/ingib/site-auth/internal/logger"
	"github.com/ingib/site-auth/internal/server"
	"github.com/ingib/site-auth/internal/service"
	"github.com/ingib/site-auth/internal/store"
	"github.com/ingib/site-auth/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("site-auth-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	privatePEM, err := os.ReadFile(cfg.Auth.PrivateKeyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error reading private key")
	}
	publicPEM, err := os.ReadFile(cfg.Auth.PublicKeyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error reading public key")
	}

	issuer, err := crypto.NewTokenIssuer(privatePEM, publicPEM, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("error building token issuer")
	}

	services := service.NewServices(db, crypto.NewPasswordVault(), issuer, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	sweeper := workers.NewSessionSweeper(db.Ledger().Profiles,
		workers.DefaultSweepInterval, workers.DefaultSessionMaxAge, log)
	workers.NewWorkers(sweeper).Run()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
