package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/realworld-persistence/internal/repository"
	"github.com/rs/zerolog"
)

// ErrUnknownCollection is returned for collection names outside the schema
var ErrUnknownCollection = errors.New("unknown collection")

// statsService is the concrete implementation of StatsService
type statsService struct {
	store *repository.Store
	log   zerolog.Logger
}

func newStatsService(store *repository.Store, log zerolog.Logger) *statsService {
	return &statsService{
		store: store,
		log:   log.With().Str("service", "stats").Logger(),
	}
}

func (s *statsService) Backend() string {
	return s.store.Name()
}

func (s *statsService) HealthCheck(ctx context.Context) error {
	if err := s.store.HealthCheck(ctx); err != nil {
		s.log.Warn().Err(err).Str("backend", s.store.Name()).Msg("Backend health check failed")
		return err
	}
	return nil
}

// GetCounts counts every collection in insertion order
func (s *statsService) GetCounts(ctx context.Context) (*Counts, error) {
	counts := &Counts{}
	targets := map[repository.Collection]*int{
		repository.Users:       &counts.Users,
		repository.Tags:        &counts.Tags,
		repository.Articles:    &counts.Articles,
		repository.ArticleTags: &counts.ArticleTags,
		repository.Comments:    &counts.Comments,
		repository.Favorites:   &counts.Favorites,
		repository.Follows:     &counts.Follows,
	}

	for _, c := range repository.Collections {
		n, err := s.count(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.Document, err)
		}
		*targets[c] = n
	}
	return counts, nil
}

// GetCount returns the count for a collection given by its document or table name
func (s *statsService) GetCount(ctx context.Context, collection string) (int, error) {
	for _, c := range repository.Collections {
		if c.Document == collection || c.Table == collection {
			return s.count(ctx, c)
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
}

func (s *statsService) count(ctx context.Context, c repository.Collection) (int, error) {
	switch c {
	case repository.Users:
		return s.store.User.Count(ctx)
	case repository.Tags:
		return s.store.Tag.Count(ctx)
	case repository.Articles:
		return s.store.Article.Count(ctx)
	case repository.ArticleTags:
		return s.store.ArticleTag.Count(ctx)
	case repository.Comments:
		return s.store.Comment.Count(ctx)
	case repository.Favorites:
		return s.store.Favorite.Count(ctx)
	case repository.Follows:
		return s.store.Follow.Count(ctx)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownCollection, c.Document)
	}
}
