// Package memory provides in-process repositories for local development and
// tests. Behavior mirrors the MongoDB implementations: unique usernames,
// insertion order listing, and newest-first log queries.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alcyxob/exercise-tracker/internal/domain"
	"github.com/alcyxob/exercise-tracker/internal/repository"
)

// Store holds users and exercises in memory.
type Store struct {
	mu        sync.RWMutex
	users     []domain.User
	byName    map[string]primitive.ObjectID
	exercises []domain.Exercise
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{byName: make(map[string]primitive.ObjectID)}
}

// Users returns a repository.UserRepository view of the store.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// Exercises returns a repository.ExerciseRepository view of the store.
func (s *Store) Exercises() repository.ExerciseRepository { return exerciseRepo{s} }

// ExerciseCount reports how many exercises are stored.
func (s *Store) ExerciseCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.exercises)
}

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Username == "" {
		return primitive.NilObjectID, errors.New("username is required")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.byName[user.Username]; taken {
		return primitive.NilObjectID, repository.ErrDuplicateKey
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	r.s.users = append(r.s.users, *user)
	r.s.byName[user.Username] = user.ID
	return user.ID, nil
}

func (r userRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) List(ctx context.Context) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]domain.User, len(r.s.users))
	copy(users, r.s.users)
	return users, nil
}

type exerciseRepo struct{ s *Store }

func (r exerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.Description == "" || exercise.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("exercise description and user ID are required")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	exercise.ID = primitive.NewObjectID()
	exercise.CreatedAt = time.Now().UTC()
	if exercise.Date.IsZero() {
		exercise.Date = exercise.CreatedAt
	}
	r.s.exercises = append(r.s.exercises, *exercise)
	return exercise.ID, nil
}

func (r exerciseRepo) FindLog(ctx context.Context, filter repository.LogFilter) ([]domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Exercise{}
	for _, ex := range r.s.exercises {
		if ex.UserID != filter.UserID {
			continue
		}
		if filter.From != nil && ex.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && ex.Date.After(*filter.To) {
			continue
		}
		out = append(out, ex)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if filter.Limit > 0 && int64(len(out)) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
