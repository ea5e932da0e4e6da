// Command exporter uploads every user's exercise log to S3-compatible
// storage and prints a presigned download URL for each object.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/alcyxob/exercise-tracker/internal/config"
	"github.com/alcyxob/exercise-tracker/internal/export"
	"github.com/alcyxob/exercise-tracker/internal/logger"
	"github.com/alcyxob/exercise-tracker/internal/repository/mongo"
	"github.com/alcyxob/exercise-tracker/internal/storage"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	expiry := flag.Duration("url-expiry", 24*time.Hour, "lifetime of the printed download URLs")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("Could not load config")
	}
	log := logger.New(cfg.Log)

	os.Exit(run(cfg, log, *expiry))
}

func run(cfg config.Config, log zerolog.Logger, expiry time.Duration) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Error().Err(err).Msg("Could not connect to MongoDB")
		return 1
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	fileStorage, err := storage.NewS3Storage(ctx, cfg.S3, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize S3 storage")
		return 1
	}

	exporter := export.NewExporter(
		mongo.NewMongoUserRepository(appDB),
		mongo.NewMongoExerciseRepository(appDB),
		fileStorage,
		log,
		expiry,
	)

	result, err := exporter.Run(ctx)
	for _, obj := range result.Objects {
		fmt.Printf("%s\t%s\t%s\n", obj.UserID, obj.Key, obj.URL)
	}
	if err != nil {
		log.Error().Err(err).Msg("Export aborted")
		return 1
	}
	if result.Failed > 0 {
		return 1
	}
	return 0
}
