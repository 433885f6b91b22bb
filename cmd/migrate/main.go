package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/alimikegami/product-catalog-service/config"
	"github.com/alimikegami/product-catalog-service/internal/app"
	"github.com/alimikegami/product-catalog-service/internal/infrastructure/database/postgres"
	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog/log"
)

func main() {
	app.InitLogger()

	var (
		dsn     = flag.String("dsn", "", "Database connection string (defaults to DB_* environment variables)")
		up      = flag.Bool("up", false, "Run all up migrations")
		down    = flag.Bool("down", false, "Run all down migrations")
		steps   = flag.Int("steps", 0, "Number of migrations (positive=up, negative=down)")
		version = flag.Bool("version", false, "Print current migration version")
		force   = flag.Int("force", -1, "Force set version (use with caution)")
	)
	flag.Parse()

	forceSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			forceSet = true
		}
	})

	if *dsn == "" {
		pg := config.CreateNewConfig().PostgreSQLConfig
		*dsn = postgres.URL(pg.DBUsername, pg.DBPassword, pg.DBHost, pg.DBPort, pg.DBName)
	}

	m, err := postgres.NewMigrator(*dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, err := m.Version()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to get version")
		}
		fmt.Printf("version: %d, dirty: %v\n", v, dirty)
	case forceSet:
		if err := m.Force(*force); err != nil {
			log.Fatal().Err(err).Msg("failed to force version")
		}
		fmt.Printf("forced to version %d\n", *force)
	case *up:
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatal().Err(err).Msg("failed to run up migrations")
		}
		fmt.Println("migrations applied successfully")
	case *down:
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatal().Err(err).Msg("failed to run down migrations")
		}
		fmt.Println("migrations reverted successfully")
	case *steps != 0:
		if err := m.Steps(*steps); err != nil && err != migrate.ErrNoChange {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		fmt.Printf("applied %d migration steps\n", *steps)
	default:
		fmt.Println("usage: migrate [-dsn <connection-string>] [-up|-down|-steps N|-version|-force N]")
		flag.PrintDefaults()
		os.Exit(2)
	}
}
