package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/alcyxob/exercise-tracker/internal/api"
	"github.com/alcyxob/exercise-tracker/internal/config"
	"github.com/alcyxob/exercise-tracker/internal/logger"
	"github.com/alcyxob/exercise-tracker/internal/repository"
	"github.com/alcyxob/exercise-tracker/internal/repository/memory"
	"github.com/alcyxob/exercise-tracker/internal/repository/mongo"
	"github.com/alcyxob/exercise-tracker/internal/service"
)

// memoryURIPrefix selects the in-process store instead of MongoDB.
const memoryURIPrefix = "memory://"

// @title Exercise Tracker API
// @version 1.0
// @description Register users, log exercises, and query exercise history.
// @BasePath /api
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("Could not load config")
	}

	log := logger.New(cfg.Log)
	log.Info().Msg("Starting exercise tracker server...")

	// --- Repositories ---
	var (
		userRepo     repository.UserRepository
		exerciseRepo repository.ExerciseRepository
	)
	if strings.HasPrefix(cfg.Database.URI, memoryURIPrefix) {
		log.Warn().Msg("Using in-memory store; data is lost on exit")
		store := memory.NewStore()
		userRepo, exerciseRepo = store.Users(), store.Exercises()
	} else {
		dbClient, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not connect to MongoDB")
		}
		defer func() {
			log.Info().Msg("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Error().Err(err).Msg("Failed to disconnect MongoDB")
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		log.Info().Str("database", cfg.Database.Name).Msg("Database connection established")

		// Registration relies on the unique username index, so it must exist
		// before the server accepts traffic.
		indexCtx, cancelIndex := context.WithTimeout(context.Background(), time.Minute)
		err = mongo.EnsureRequiredIndexes(indexCtx, appDB)
		cancelIndex()
		if err != nil {
			log.Fatal().Err(err).Msg("Could not create required indexes")
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			mongo.EnsureQueryIndexes(ctx, appDB, log)
		}()

		userRepo = mongo.NewMongoUserRepository(appDB)
		exerciseRepo = mongo.NewMongoExerciseRepository(appDB)
	}

	// --- Services ---
	userService := service.NewUserService(userRepo)
	exerciseService := service.NewExerciseService(userRepo, exerciseRepo)

	// --- Router ---
	router, err := api.NewRouter(cfg, log, userService, exerciseService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up routes")
	}

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Your app is listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server exiting")
}
