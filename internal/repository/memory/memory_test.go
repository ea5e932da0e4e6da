package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alcyxob/exercise-tracker/internal/domain"
	"github.com/alcyxob/exercise-tracker/internal/repository"
)

func TestUsersUniqueAndOrdered(t *testing.T) {
	store := NewStore()
	users := store.Users()
	ctx := context.Background()

	_, err := users.Create(ctx, &domain.User{Username: "alice"})
	require.NoError(t, err)
	_, err = users.Create(ctx, &domain.User{Username: "bob"})
	require.NoError(t, err)
	_, err = users.Create(ctx, &domain.User{Username: "alice"})
	require.ErrorIs(t, err, repository.ErrDuplicateKey)

	list, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "alice", list[0].Username)
	require.Equal(t, "bob", list[1].Username)

	got, err := users.GetByID(ctx, list[1].ID)
	require.NoError(t, err)
	require.Equal(t, "bob", got.Username)
}

func TestFindLogFiltersSortsAndLimits(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	owner := &domain.User{Username: "alice"}
	_, err := store.Users().Create(ctx, owner)
	require.NoError(t, err)
	other := &domain.User{Username: "bob"}
	_, err = store.Users().Create(ctx, other)
	require.NoError(t, err)

	day := func(d int) time.Time { return time.Date(2023, time.January, d, 0, 0, 0, 0, time.UTC) }
	for d := 1; d <= 5; d++ {
		_, err := store.Exercises().Create(ctx, &domain.Exercise{UserID: owner.ID, Description: "run", Duration: float64(d), Date: day(d)})
		require.NoError(t, err)
	}
	_, err = store.Exercises().Create(ctx, &domain.Exercise{UserID: other.ID, Description: "swim", Duration: 10, Date: day(3)})
	require.NoError(t, err)

	from, to := day(2), day(4)
	log, err := store.Exercises().FindLog(ctx, repository.LogFilter{UserID: owner.ID, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, log, 3)
	require.Equal(t, day(4), log[0].Date)
	require.Equal(t, day(2), log[2].Date)

	log, err = store.Exercises().FindLog(ctx, repository.LogFilter{UserID: owner.ID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, log, 2)
	require.Equal(t, day(5), log[0].Date)
	require.Equal(t, day(4), log[1].Date)
	require.Equal(t, 6, store.ExerciseCount())
}
