package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/realworld-persistence/internal/mocks"
	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintError(t *testing.T) {
	driverErr := errors.New("E11000 duplicate key error")
	err := error(&repository.ConstraintError{Collection: "users", Key: "users_email_key", Err: driverErr})

	assert.Equal(t, "users: duplicate key users_email_key: E11000 duplicate key error", err.Error())
	assert.True(t, errors.Is(err, repository.ErrDuplicateKey))
	assert.True(t, errors.Is(err, driverErr))

	bare := &repository.ConstraintError{Collection: "tag"}
	assert.Equal(t, "tag: duplicate key", bare.Error())
	assert.ErrorIs(t, bare, repository.ErrDuplicateKey)
}

func TestIndexesFor(t *testing.T) {
	users := repository.IndexesFor(repository.Users)
	require.Len(t, users, 2)
	assert.Equal(t, "users_email_key", users[0].Name)
	assert.Equal(t, "users_username_key", users[1].Name)

	assert.Empty(t, repository.IndexesFor(repository.Tags))

	for _, spec := range repository.Indexes {
		assert.Len(t, spec.Columns, len(spec.Fields), spec.Name)
	}
}

func TestMemoryStore_UniqueKeysAfterIndexes(t *testing.T) {
	ctx := context.Background()
	mem := mocks.NewMemoryStore()
	store := mem.Store()

	user := func(email, username string) *models.User {
		return &models.User{ID: models.NewID(), Email: email, Username: username, Password: "x"}
	}

	n, err := store.User.BatchInsert(ctx, []*models.User{user("a@example.com", "a"), user("a@example.com", "b")})
	require.NoError(t, err, "emails are not unique before indexes exist")
	assert.Equal(t, 2, n)

	assert.Error(t, store.EnsureIndexes(ctx), "existing duplicates block the index")

	require.NoError(t, store.Reset(ctx))
	_, err = store.User.BatchInsert(ctx, []*models.User{user("a@example.com", "a")})
	require.NoError(t, err)
	require.NoError(t, store.EnsureIndexes(ctx))

	n, err = store.User.BatchInsert(ctx, []*models.User{
		user("b@example.com", "b"),
		user("a@example.com", "c"),
		user("d@example.com", "d"),
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
	assert.Equal(t, 1, n, "ordered insert stops at the duplicate")
}

func TestMemoryStore_TagNamesMatchDocumentIndexes(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewStore()

	tag := func(name string) *models.Tag { return &models.Tag{ID: models.NewID(), Name: name} }

	require.NoError(t, store.EnsureIndexes(ctx))
	n, err := store.Tag.BatchInsert(ctx, []*models.Tag{tag("go"), tag("go")})
	require.NoError(t, err, "no index declares tag names unique")
	assert.Equal(t, 2, n)
}

func TestMemoryStore_DuplicateIDs(t *testing.T) {
	store := mocks.NewStore()
	u := &models.User{ID: "u-1", Email: "a@example.com", Username: "a"}

	_, err := store.User.BatchInsert(context.Background(), []*models.User{u, u})
	var constraintErr *repository.ConstraintError
	require.True(t, errors.As(err, &constraintErr))
	assert.Equal(t, "_id=u-1", constraintErr.Key)
}

func TestMemoryStore_ArticleUpdate(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewStore()

	article, err := models.NewArticle("author-1", "Old Title", "desc", "body")
	require.NoError(t, err)
	_, err = store.Article.BatchInsert(ctx, []*models.Article{article})
	require.NoError(t, err)
	require.NoError(t, store.EnsureIndexes(ctx))

	updated := *article
	require.NoError(t, updated.SetTitle("Brand New Title"))
	require.NoError(t, store.Article.Update(ctx, &updated))

	got, err := store.Article.GetBySlug(ctx, "brand-new-title")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, article.ID, got.ID)

	old, err := store.Article.GetBySlug(ctx, "old-title")
	require.NoError(t, err)
	assert.Nil(t, old)

	err = store.Article.Update(ctx, &models.Article{ID: "missing"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemoryStore_ArticleUpdateMovesSlugKey(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewStore()

	article, err := models.NewArticle("author-1", "Old Title", "desc", "body")
	require.NoError(t, err)
	_, err = store.Article.BatchInsert(ctx, []*models.Article{article})
	require.NoError(t, err)
	require.NoError(t, store.EnsureIndexes(ctx))

	loaded, err := store.Article.GetBySlug(ctx, "old-title")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.NoError(t, loaded.SetTitle("New Title"))

	stored, err := store.Article.GetByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "old-title", stored.Slug, "loaded records are copies")

	require.NoError(t, store.Article.Update(ctx, loaded))

	reuse, err := models.NewArticle("author-2", "Old Title", "desc", "body")
	require.NoError(t, err)
	_, err = store.Article.BatchInsert(ctx, []*models.Article{reuse})
	assert.NoError(t, err, "old slug is free after the update")

	clash, err := models.NewArticle("author-2", "New Title", "desc", "body")
	require.NoError(t, err)
	_, err = store.Article.BatchInsert(ctx, []*models.Article{clash})
	var constraintErr *repository.ConstraintError
	require.True(t, errors.As(err, &constraintErr))
	assert.Equal(t, "slug=new-title", constraintErr.Key)
}

func TestCachedTagRepository_ListAll(t *testing.T) {
	ctx := context.Background()
	tagCache := mocks.NewMockTagCache()
	store := repository.WithTagCache(mocks.NewStore(), tagCache, time.Minute, zerolog.Nop())

	_, err := store.Tag.BatchInsert(ctx, []*models.Tag{
		{ID: models.NewID(), Name: "spring"},
		{ID: models.NewID(), Name: "java"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tagCache.InvalidateCalls)

	tags, err := store.Tag.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "java", tags[0].Name)
	assert.Equal(t, 1, tagCache.SetCalls)
	assert.Equal(t, time.Minute, tagCache.LastTTL)

	_, err = store.Tag.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, tagCache.SetCalls, "second listing is served from the cache")

	require.NoError(t, store.Reset(ctx))
	assert.Equal(t, 2, tagCache.InvalidateCalls)

	tags, err = store.Tag.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)

	require.NoError(t, store.Close(ctx))
	assert.True(t, tagCache.Closed)
}

func TestCachedTagRepository_CacheOutageFallsBack(t *testing.T) {
	ctx := context.Background()
	tagCache := mocks.NewMockTagCache()
	tagCache.GetError = errors.New("redis: connection refused")
	store := repository.WithTagCache(mocks.NewStore(), tagCache, time.Minute, zerolog.Nop())

	_, err := store.Tag.BatchInsert(ctx, []*models.Tag{{ID: models.NewID(), Name: "go"}})
	require.NoError(t, err)

	tags, err := store.Tag.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "go", tags[0].Name)
}
