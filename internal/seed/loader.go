package seed

import (
	"context"
	"fmt"

	"github.com/realworld-persistence/internal/repository"
	"github.com/rs/zerolog"
)

// Result counts the records written per collection
type Result struct {
	Users       int `json:"users"`
	Tags        int `json:"tags"`
	Articles    int `json:"articles"`
	ArticleTags int `json:"article_tags"`
	Comments    int `json:"comments"`
	Favorites   int `json:"favorites"`
	Follows     int `json:"follows"`
}

// Loader writes a Dataset into one store
type Loader struct {
	store *repository.Store
	log   zerolog.Logger
}

// NewLoader creates a loader for store
func NewLoader(store *repository.Store, log zerolog.Logger) *Loader {
	return &Loader{
		store: store,
		log:   log.With().Str("component", "seed").Str("backend", store.Name()).Logger(),
	}
}

// Run validates ds, empties the store, inserts ds and declares indexes.
// The first failure aborts the run.
func (l *Loader) Run(ctx context.Context, ds *Dataset) (*Result, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	l.log.Info().Msg("Dropping existing collections")
	if err := l.store.Reset(ctx); err != nil {
		return nil, fmt.Errorf("failed to reset store: %w", err)
	}

	result, err := l.Insert(ctx, ds)
	if err != nil {
		return result, err
	}

	l.log.Info().Msg("Creating indexes")
	if err := l.store.EnsureIndexes(ctx); err != nil {
		return result, fmt.Errorf("failed to create indexes: %w", err)
	}

	l.log.Info().Msg("Sample data creation completed successfully")
	return result, nil
}

// Insert writes ds in dependency order: users, tags, articles, article
// tags, comments, favorites, follows. It stops at the first error and
// returns the counts written so far.
func (l *Loader) Insert(ctx context.Context, ds *Dataset) (*Result, error) {
	result := &Result{}

	steps := []func() error{
		func() error { return insert(ctx, l.log, "users", ds.Users, l.store.User.BatchInsert, &result.Users) },
		func() error { return insert(ctx, l.log, "tags", ds.Tags, l.store.Tag.BatchInsert, &result.Tags) },
		func() error {
			return insert(ctx, l.log, "articles", ds.Articles, l.store.Article.BatchInsert, &result.Articles)
		},
		func() error {
			return insert(ctx, l.log, "article tags", ds.ArticleTags, l.store.ArticleTag.BatchInsert, &result.ArticleTags)
		},
		func() error {
			return insert(ctx, l.log, "article comments", ds.Comments, l.store.Comment.BatchInsert, &result.Comments)
		},
		func() error {
			return insert(ctx, l.log, "article favorites", ds.Favorites, l.store.Favorite.BatchInsert, &result.Favorites)
		},
		func() error {
			return insert(ctx, l.log, "user follows", ds.Follows, l.store.Follow.BatchInsert, &result.Follows)
		},
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return result, err
		}
	}
	return result, nil
}

func insert[T any](ctx context.Context, log zerolog.Logger, name string, docs []T, batchInsert func(context.Context, []T) (int, error), count *int) error {
	n, err := batchInsert(ctx, docs)
	*count = n
	if err != nil {
		return fmt.Errorf("failed to insert %s: %w", name, err)
	}
	log.Info().Int("count", n).Msgf("Inserted %d %s", n, name)
	return nil
}
