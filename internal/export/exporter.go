// Package export writes each user's exercise log to object storage as JSON.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alcyxob/exercise-tracker/internal/domain"
	"github.com/alcyxob/exercise-tracker/internal/metrics"
	"github.com/alcyxob/exercise-tracker/internal/repository"
	"github.com/alcyxob/exercise-tracker/internal/storage"
)

const contentTypeJSON = "application/json"

// Document mirrors the body of GET /api/users/:id/logs.
type Document struct {
	Username string  `json:"username"`
	ID       string  `json:"id"`
	Count    int     `json:"count"`
	Log      []Entry `json:"log"`
}

type Entry struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// Object is one uploaded export.
type Object struct {
	UserID string
	Key    string
	URL    string
}

// Result summarizes a run. Failed counts users whose export did not complete.
type Result struct {
	Objects []Object
	Failed  int
}

type Exporter struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	store        storage.FileStorage
	log          zerolog.Logger
	urlExpiry    time.Duration
}

func NewExporter(
	userRepo repository.UserRepository,
	exerciseRepo repository.ExerciseRepository,
	store storage.FileStorage,
	log zerolog.Logger,
	urlExpiry time.Duration,
) *Exporter {
	return &Exporter{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		store:        store,
		log:          log.With().Str("component", "exporter").Logger(),
		urlExpiry:    urlExpiry,
	}
}

// ObjectKey is the storage key of a user's export.
func ObjectKey(userID string) string {
	return "exports/" + userID + ".json"
}

// Run exports every user. Only a failure to list users aborts the run.
func (e *Exporter) Run(ctx context.Context) (Result, error) {
	users, err := e.userRepo.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list users: %w", err)
	}

	var result Result
	for i := range users {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		user := &users[i]
		obj, err := e.exportUser(ctx, user)
		if err != nil {
			result.Failed++
			metrics.ExportsTotal.WithLabelValues("failure").Inc()
			e.log.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("Export failed")
			continue
		}

		metrics.ExportsTotal.WithLabelValues("success").Inc()
		result.Objects = append(result.Objects, obj)
	}

	e.log.Info().Int("exported", len(result.Objects)).Int("failed", result.Failed).Msg("Export finished")
	return result, nil
}

func (e *Exporter) exportUser(ctx context.Context, user *domain.User) (Object, error) {
	exercises, err := e.exerciseRepo.FindLog(ctx, repository.LogFilter{UserID: user.ID})
	if err != nil {
		return Object{}, fmt.Errorf("find log: %w", err)
	}

	body, err := json.Marshal(NewDocument(user, exercises))
	if err != nil {
		return Object{}, fmt.Errorf("marshal log: %w", err)
	}

	key := ObjectKey(user.ID.Hex())
	if err := e.store.PutObject(ctx, key, contentTypeJSON, body); err != nil {
		return Object{}, err
	}

	url, err := e.store.GeneratePresignedDownloadURL(ctx, key, e.urlExpiry)
	if err != nil {
		// An export nobody can be pointed at is removed rather than left behind.
		if delErr := e.store.DeleteObject(ctx, key); delErr != nil {
			e.log.Warn().Err(delErr).Str("key", key).Msg("Failed to remove unreachable export")
		}
		return Object{}, err
	}

	return Object{UserID: user.ID.Hex(), Key: key, URL: url}, nil
}

// NewDocument renders a user's log newest first, as the API does.
func NewDocument(user *domain.User, exercises []domain.Exercise) Document {
	entries := make([]Entry, len(exercises))
	for i, ex := range exercises {
		entries[i] = Entry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        domain.FormatDate(ex.Date),
		}
	}
	return Document{
		Username: user.Username,
		ID:       user.ID.Hex(),
		Count:    len(entries),
		Log:      entries,
	}
}
