package main

import (
	"context"
	"os"
	"time"

	"ilmakase/internal/config"
	"ilmakase/internal/container"
	"ilmakase/internal/migration"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_PRETTY") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	gin.SetMode(cfg.Server.GinMode)

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	cancel()

	c, err := container.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create container")
	}
	if err := c.InitWithDatabase(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize container")
	}
	defer c.Close()

	addr := ":" + cfg.Server.Port
	log.Info().Str("addr", addr).Msg("Starting API server")
	if err := c.Server.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
