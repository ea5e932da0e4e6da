package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/alcyxob/exercise-tracker/internal/domain"
	"github.com/alcyxob/exercise-tracker/internal/repository"
)

func TestExerciseRepositoryCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("keeps caller date", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoExerciseRepository(mt.DB)

		date := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
		ex := &domain.Exercise{UserID: primitive.NewObjectID(), Description: "run", Duration: 30, Date: date}
		id, err := repo.Create(context.Background(), ex)
		require.NoError(mt, err)
		require.False(mt, id.IsZero())
		require.Equal(mt, date, ex.Date)
	})

	mt.Run("defaults date to creation time", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoExerciseRepository(mt.DB)

		ex := &domain.Exercise{UserID: primitive.NewObjectID(), Description: "swim", Duration: 0}
		_, err := repo.Create(context.Background(), ex)
		require.NoError(mt, err)
		require.Equal(mt, ex.CreatedAt, ex.Date)
	})

	mt.Run("requires description", func(mt *mtest.T) {
		repo := NewMongoExerciseRepository(mt.DB)

		_, err := repo.Create(context.Background(), &domain.Exercise{UserID: primitive.NewObjectID()})
		require.Error(mt, err)
	})
}

func TestExerciseRepositoryFindLog(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("applies bounds sort and limit", func(mt *mtest.T) {
		userID := primitive.NewObjectID()
		newer := time.Date(2023, time.January, 4, 0, 0, 0, 0, time.UTC)
		older := time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.exercises", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "userId", Value: userID},
				{Key: "description", Value: "bike"},
				{Key: "duration", Value: 45.0},
				{Key: "date", Value: newer},
			},
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "userId", Value: userID},
				{Key: "description", Value: "run"},
				{Key: "duration", Value: 30.0},
				{Key: "date", Value: older},
			},
		))
		repo := NewMongoExerciseRepository(mt.DB)

		exercises, err := repo.FindLog(context.Background(), repository.LogFilter{
			UserID: userID,
			From:   &older,
			To:     &newer,
			Limit:  2,
		})
		require.NoError(mt, err)
		require.Len(mt, exercises, 2)
		require.Equal(mt, "bike", exercises[0].Description)
		require.Equal(mt, 45.0, exercises[0].Duration)
		require.True(mt, newer.Equal(exercises[0].Date))

		evt := mt.GetStartedEvent()
		require.Equal(mt, "find", evt.CommandName)
		require.Equal(mt, int64(-1), evt.Command.Lookup("sort", "date").AsInt64())
		require.Equal(mt, int64(2), evt.Command.Lookup("limit").AsInt64())

		filter := evt.Command.Lookup("filter").Document()
		require.Equal(mt, userID, filter.Lookup("userId").ObjectID())
		require.True(mt, older.Equal(filter.Lookup("date", "$gte").Time()))
		require.True(mt, newer.Equal(filter.Lookup("date", "$lte").Time()))
	})

	mt.Run("no bounds no limit", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.exercises", mtest.FirstBatch))
		repo := NewMongoExerciseRepository(mt.DB)

		exercises, err := repo.FindLog(context.Background(), repository.LogFilter{UserID: primitive.NewObjectID()})
		require.NoError(mt, err)
		require.Empty(mt, exercises)

		evt := mt.GetStartedEvent()
		_, err = evt.Command.LookupErr("limit")
		require.Error(mt, err)
		_, err = evt.Command.LookupErr("filter", "date")
		require.Error(mt, err)
	})

	mt.Run("storage error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))
		repo := NewMongoExerciseRepository(mt.DB)

		_, err := repo.FindLog(context.Background(), repository.LogFilter{UserID: primitive.NewObjectID()})
		require.Error(mt, err)
	})
}

func TestLogQuery(t *testing.T) {
	userID := primitive.NewObjectID()
	from := time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)

	query := logQuery(repository.LogFilter{UserID: userID, From: &from})
	require.Equal(t, userID, query["userId"])
	require.Equal(t, bson.M{"$gte": from}, query["date"])

	query = logQuery(repository.LogFilter{UserID: userID})
	require.NotContains(t, query, "date")
}
