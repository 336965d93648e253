package repository

import (
	"context"
	"errors"
	"time"

	"github.com/realworld-persistence/internal/cache"
	"github.com/realworld-persistence/internal/models"
	"github.com/rs/zerolog"
)

// CachedTagRepository serves ListAll from a TagCache and invalidates it
// whenever tags are inserted.
type CachedTagRepository struct {
	TagRepository
	cache cache.TagCache
	ttl   time.Duration
	log   zerolog.Logger
}

func NewCachedTagRepository(inner TagRepository, c cache.TagCache, ttl time.Duration, log zerolog.Logger) *CachedTagRepository {
	return &CachedTagRepository{
		TagRepository: inner,
		cache:         c,
		ttl:           ttl,
		log:           log.With().Str("component", "tag_cache").Logger(),
	}
}

func (r *CachedTagRepository) ListAll(ctx context.Context) ([]*models.Tag, error) {
	tags, err := r.cache.GetTags(ctx)
	if err == nil {
		return tags, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		// Cache outages degrade to the backing store
		r.log.Warn().Err(err).Msg("Tag cache read failed")
	}

	tags, err = r.TagRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetTags(ctx, tags, r.ttl); err != nil {
		r.log.Warn().Err(err).Msg("Tag cache write failed")
	}
	return tags, nil
}

func (r *CachedTagRepository) BatchInsert(ctx context.Context, tags []*models.Tag) (int, error) {
	n, err := r.TagRepository.BatchInsert(ctx, tags)
	if n > 0 {
		r.invalidate(ctx)
	}
	return n, err
}

func (r *CachedTagRepository) invalidate(ctx context.Context) {
	if err := r.cache.Invalidate(ctx); err != nil {
		r.log.Warn().Err(err).Msg("Tag cache invalidation failed")
	}
}

// cachedBackend drops the tag cache together with the data it mirrors
type cachedBackend struct {
	Backend
	tags *CachedTagRepository
}

func (b *cachedBackend) Reset(ctx context.Context) error {
	if err := b.Backend.Reset(ctx); err != nil {
		return err
	}
	b.tags.invalidate(ctx)
	return nil
}

func (b *cachedBackend) Close(ctx context.Context) error {
	err := b.Backend.Close(ctx)
	if cerr := b.tags.cache.Close(); err == nil {
		err = cerr
	}
	return err
}

// WithTagCache returns a copy of store whose tag listing goes through c
func WithTagCache(store *Store, c cache.TagCache, ttl time.Duration, log zerolog.Logger) *Store {
	tags := NewCachedTagRepository(store.Tag, c, ttl, log)
	repos := store.Repositories
	repos.Tag = tags
	return NewStore(repos, &cachedBackend{Backend: store.Backend, tags: tags})
}
