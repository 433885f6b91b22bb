package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alimikegami/product-catalog-service/config"
	"github.com/alimikegami/product-catalog-service/internal/app"
	"github.com/rs/zerolog/log"

	postgresDriver "github.com/alimikegami/product-catalog-service/internal/infrastructure/database/postgres"
)

func main() {
	app.InitLogger()

	config := config.CreateNewConfig()
	db, err := postgresDriver.GetDBInstance(config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword, config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := app.App{
		DB:     db,
		Config: config,
	}

	if err := server.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up the service")
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	if err := server.StopServer(); err != nil {
		log.Error().Err(err).Msg("Failed to shut down cleanly")
	}
}
