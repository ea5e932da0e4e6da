package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alcyxob/exercise-tracker/internal/domain"
	"github.com/alcyxob/exercise-tracker/internal/metrics"
	"github.com/alcyxob/exercise-tracker/internal/repository"
)

// LogExerciseInput carries the caller supplied fields of a new exercise as
// raw text. Duration is required, numeric, and may be zero. Date is optional;
// empty means now. Malformed holds a request decode failure and is reported
// as a validation error after the user lookup.
type LogExerciseInput struct {
	Description string
	Duration    string
	Date        string
	Malformed   error
}

// LogQuery carries the raw query parameters of a log request.
type LogQuery struct {
	From  string
	To    string
	Limit string
}

// ExerciseLog is a user's filtered exercise history. User is nil when the
// requested user does not exist.
type ExerciseLog struct {
	User      *domain.User
	Exercises []domain.Exercise
}

type ExerciseService interface {
	LogExercise(ctx context.Context, userID string, input LogExerciseInput) (*domain.User, *domain.Exercise, error)
	GetLog(ctx context.Context, userID string, query LogQuery) (*ExerciseLog, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	now          func() time.Time
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(userRepo repository.UserRepository, exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		now:          time.Now,
	}
}

// LogExercise records an exercise for an existing user and returns both.
func (s *exerciseService) LogExercise(ctx context.Context, userID string, input LogExerciseInput) (*domain.User, *domain.Exercise, error) {
	id, err := repository.ParseID(userID)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	if input.Malformed != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidationFailed, input.Malformed)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, nil, fmt.Errorf("%w: description is required", ErrValidationFailed)
	}
	duration, err := ParseDuration(input.Duration)
	if err != nil {
		return nil, nil, err
	}

	date, err := domain.ParseDate(input.Date, s.now().UTC())
	if err != nil {
		return nil, nil, err
	}

	exercise := &domain.Exercise{
		UserID:      user.ID,
		Description: input.Description,
		Duration:    duration,
		Date:        date,
	}
	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, nil, err
	}
	exercise.ID = exerciseID

	metrics.ExercisesLogged.Inc()
	return user, exercise, nil
}

// GetLog returns a user's exercises filtered by the query. A missing user
// does not short-circuit: the exercise query still runs and the returned
// log carries a nil User.
func (s *exerciseService) GetLog(ctx context.Context, userID string, query LogQuery) (*ExerciseLog, error) {
	id, err := repository.ParseID(userID)
	if err != nil {
		return nil, err
	}

	// TODO: reject unknown users like LogExercise does once clients stop
	// relying on the empty log response.
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	from, err := domain.ParseOptionalDate(query.From)
	if err != nil {
		return nil, err
	}
	to, err := domain.ParseOptionalDate(query.To)
	if err != nil {
		return nil, err
	}

	exercises, err := s.exerciseRepo.FindLog(ctx, repository.LogFilter{
		UserID: id,
		From:   from,
		To:     to,
		Limit:  ParseLimit(query.Limit),
	})
	if err != nil {
		return nil, err
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}

	return &ExerciseLog{User: user, Exercises: exercises}, nil
}

// ParseDuration reads a duration in minutes. Surrounding whitespace is
// ignored; empty, non-numeric, and non-finite values are rejected.
func ParseDuration(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: duration is required", ErrValidationFailed)
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("%w: duration %q is not a number", ErrValidationFailed, s)
	}
	return d, nil
}

// ParseLimit reads the leading integer of s, ignoring anything after it,
// so "2" and "2abc" both give 2. Values that do not start with a positive
// integer give 0, meaning no limit.
func ParseLimit(s string) int64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")

	var n int64
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int64(r-'0')
		digits++
		if n > 1<<31 {
			// Anything this large is no cap at all.
			return 0
		}
	}
	if digits == 0 || n <= 0 {
		return 0
	}
	return n
}
