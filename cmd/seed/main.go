package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"event_hotels/internal/adapters/observability"
	"event_hotels/internal/app"
	"event_hotels/internal/shared"
	mysqlrepo "event_hotels/internal/storage/mysql"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("file", cfg.SeedFile).
		Int("workers", cfg.SeedWorkers).
		Msg("seed starting")

	entries, err := app.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load seed file")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	sum, err := app.NewSeedService(mysqlrepo.New(db)).SeedAll(ctx, entries, cfg.SeedWorkers)
	l := log.Info()
	if err != nil || sum.Failed > 0 {
		l = log.Warn().Err(err)
	}
	l.Int("hotels", sum.Hotels).
		Int("rooms", sum.Rooms).
		Int("failed", sum.Failed).
		Msg("seed completed")
}
