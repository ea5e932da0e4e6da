package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/alcyxob/exercise-tracker/internal/domain"
	"github.com/alcyxob/exercise-tracker/internal/repository"
)

func TestUserRepositoryCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoUserRepository(mt.DB)

		user := &domain.User{Username: "alice"}
		id, err := repo.Create(context.Background(), user)
		require.NoError(mt, err)
		require.False(mt, id.IsZero())
		require.Equal(mt, id, user.ID)
		require.False(mt, user.CreatedAt.IsZero())
	})

	mt.Run("duplicate username", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.users index: username_1",
		}))
		repo := NewMongoUserRepository(mt.DB)

		_, err := repo.Create(context.Background(), &domain.User{Username: "alice"})
		require.ErrorIs(mt, err, repository.ErrDuplicateKey)
	})

	mt.Run("missing username", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)

		_, err := repo.Create(context.Background(), &domain.User{})
		require.Error(mt, err)
	})
}

func TestUserRepositoryGetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "username", Value: "alice"},
		}))
		repo := NewMongoUserRepository(mt.DB)

		user, err := repo.GetByID(context.Background(), id)
		require.NoError(mt, err)
		require.Equal(mt, id, user.ID)
		require.Equal(mt, "alice", user.Username)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))
		repo := NewMongoUserRepository(mt.DB)

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID())
		require.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("storage error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))
		repo := NewMongoUserRepository(mt.DB)

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID())
		require.Error(mt, err)
		require.NotErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestUserRepositoryList(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns all users", func(mt *mtest.T) {
		alice, bob := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: alice}, {Key: "username", Value: "alice"}},
			bson.D{{Key: "_id", Value: bob}, {Key: "username", Value: "bob"}},
		))
		repo := NewMongoUserRepository(mt.DB)

		users, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		require.Equal(mt, "alice", users[0].Username)
		require.Equal(mt, bob, users[1].ID)

		evt := mt.GetStartedEvent()
		require.Equal(mt, "find", evt.CommandName)
		projection := evt.Command.Lookup("projection").Document()
		require.Equal(mt, int64(1), projection.Lookup("username").AsInt64())
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))
		repo := NewMongoUserRepository(mt.DB)

		users, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.NotNil(mt, users)
		require.Empty(mt, users)
	})
}
