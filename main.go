// Package main is the entry point for the JokeHub API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"jokehub/src/app/server"
	"jokehub/src/infra/config"
	"jokehub/src/infra/crypto"
	"jokehub/src/infra/db"
	"jokehub/src/infra/logger"
	"jokehub/src/infra/repo"
	"jokehub/src/infra/token"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	// Initialize database connection
	pg, err := db.New(context.Background(), cfg.Database, log)
	if err != nil {
		return err
	}
	defer pg.Close()

	// Apply pending schema migrations
	if cfg.Database.Migrate {
		if err := pg.Migrate(log); err != nil {
			return err
		}
	}

	// Initialize store and credential services
	store := repo.NewPostgresRepository(pg, log)
	hasher := crypto.NewBcryptHasher()
	tokens, err := token.NewJWTManager(cfg.Auth)
	if err != nil {
		return err
	}

	// Create and run HTTP server
	srv := server.New(cfg, log, store, hasher, tokens)

	// Run blocks until shutdown signal is received
	return srv.Run()
}
