package main

import (
	"context"
	"os"
	"time"

	"ilmakase/internal/migration"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	log.Info().Str("version", runner.Version()).Msg("Migrations applied")
}
