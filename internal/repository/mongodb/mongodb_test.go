package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestIndexModel(t *testing.T) {
	spec := repository.IndexesFor(repository.Favorites)[0]
	model := indexModel(spec)

	assert.Equal(t, bson.D{{Key: "userId", Value: 1}, {Key: "articleId", Value: 1}}, model.Keys)
	require.NotNil(t, model.Options.Name)
	assert.Equal(t, "article_favorite_user_article_key", *model.Options.Name)
	require.NotNil(t, model.Options.Unique)
	assert.True(t, *model.Options.Unique)

	plain := indexModel(repository.IndexesFor(repository.Comments)[0])
	assert.Nil(t, plain.Options.Unique)
}

func TestUserRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("batch insert", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		n, err := repo.BatchInsert(ctx, []*models.User{
			{ID: "u-1", Email: "jane@example.com", Username: "jane", Password: "hash"},
			{ID: "u-2", Email: "john@example.com", Username: "john", Password: "hash"},
		})
		require.NoError(mt, err)
		assert.Equal(mt, 2, n)
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   1,
			Code:    11000,
			Message: `E11000 duplicate key error collection: realworld.users index: users_email_key dup key: { email: "jane@example.com" }`,
		}))

		n, err := repo.BatchInsert(ctx, []*models.User{
			{ID: "u-1", Email: "jane@example.com", Username: "jane", Password: "hash"},
			{ID: "u-2", Email: "jane@example.com", Username: "jane2", Password: "hash"},
		})
		require.Error(mt, err)
		assert.Equal(mt, 1, n)
		assert.True(mt, errors.Is(err, repository.ErrDuplicateKey))

		var constraintErr *repository.ConstraintError
		require.True(mt, errors.As(err, &constraintErr))
		assert.Equal(mt, "users", constraintErr.Collection)
		assert.Equal(mt, "users_email_key", constraintErr.Key)
	})

	mt.Run("get by email", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "realworld.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u-1"},
			{Key: "email", Value: "jane@example.com"},
			{Key: "username", Value: "jane"},
			{Key: "bio", Value: "I work at the coffee shop"},
			{Key: "imageUrl", Value: nil},
		}))

		user, err := repo.GetByEmail(ctx, "jane@example.com")
		require.NoError(mt, err)
		require.NotNil(mt, user)
		assert.Equal(mt, "u-1", user.ID)
		assert.Equal(mt, "jane", user.Username)
		require.NotNil(mt, user.Bio)
		assert.Equal(mt, "I work at the coffee shop", *user.Bio)
		assert.Nil(mt, user.ImageURL)
	})

	mt.Run("get by username not found", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "realworld.users", mtest.FirstBatch))

		user, err := repo.GetByUsername(ctx, "nobody")
		require.NoError(mt, err)
		assert.Nil(mt, user)
	})

	mt.Run("email exists", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "realworld.users", mtest.FirstBatch, bson.D{{Key: "n", Value: 1}}))

		found, err := repo.EmailExists(ctx, "jane@example.com")
		require.NoError(mt, err)
		assert.True(mt, found)
	})

	mt.Run("command error", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad query"}))

		_, err := repo.Count(ctx)
		require.Error(mt, err)
		assert.False(mt, errors.Is(err, repository.ErrDuplicateKey))
		assert.Contains(mt, err.Error(), "users")
	})
}

func TestCommentRepo_ListByArticle(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes every document", func(mt *mtest.T) {
		repo := NewCommentRepo(mt.DB)
		newer := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
		older := newer.Add(-time.Hour)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "realworld.articleComment", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "c-2"}, {Key: "articleId", Value: "a-1"}, {Key: "content", Value: "second"}, {Key: "createdAt", Value: newer}},
			bson.D{{Key: "_id", Value: "c-1"}, {Key: "articleId", Value: "a-1"}, {Key: "content", Value: "first"}, {Key: "createdAt", Value: older}},
		))

		comments, err := repo.ListByArticle(context.Background(), "a-1")
		require.NoError(mt, err)
		require.Len(mt, comments, 2)
		assert.Equal(mt, "c-2", comments[0].ID)
		assert.Equal(mt, newer, comments[0].CreatedAt.UTC())
		assert.Equal(mt, "first", comments[1].Content)
	})
}

func TestArticleRepo_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("matched", func(mt *mtest.T) {
		repo := NewArticleRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		require.NoError(mt, repo.Update(ctx, &models.Article{ID: "a-1", Title: "New", Slug: "new"}))
	})

	mt.Run("missing article", func(mt *mtest.T) {
		repo := NewArticleRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Update(ctx, &models.Article{ID: "missing"})
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestBackend(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("reset drops every collection", func(mt *mtest.T) {
		store := New(mt.DB, zerolog.Nop())
		for range repository.Collections {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}

		require.NoError(mt, store.Reset(ctx))
		assert.Equal(mt, "mongodb", store.Name())
	})

	mt.Run("reset ignores missing collections", func(mt *mtest.T) {
		store := New(mt.DB, zerolog.Nop())
		for range repository.Collections {
			mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    26,
				Name:    "NamespaceNotFound",
				Message: "ns not found",
			}))
		}

		require.NoError(mt, store.Reset(ctx))
	})

	mt.Run("reset reports other failures", func(mt *mtest.T) {
		store := New(mt.DB, zerolog.Nop())
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized"}))

		err := store.Reset(ctx)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "users")
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		store := New(mt.DB, zerolog.Nop())
		for range repository.Indexes {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}

		require.NoError(mt, store.EnsureIndexes(ctx))
	})

	mt.Run("health check", func(mt *mtest.T) {
		store := New(mt.DB, zerolog.Nop())
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, store.HealthCheck(ctx))
	})
}
