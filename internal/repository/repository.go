package repository

import (
	"context"
	"time"

	"github.com/alcyxob/exercise-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
	ErrInvalidID    = RepositoryError("invalid id")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ParseID converts a hex string to an ObjectID, returning ErrInvalidID on failure.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// LogFilter narrows an exercise log query. Bounds are inclusive; a nil bound
// is open. Limit <= 0 means no limit.
type LogFilter struct {
	UserID primitive.ObjectID
	From   *time.Time
	To     *time.Time
	Limit  int64
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	// FindLog returns matching exercises sorted by date, newest first.
	FindLog(ctx context.Context, filter LogFilter) ([]domain.Exercise, error)
}
