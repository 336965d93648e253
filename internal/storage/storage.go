// Package storage opens the configured backend as a repository.Store.
package storage

import (
	"context"
	"fmt"

	"github.com/realworld-persistence/internal/cache"
	"github.com/realworld-persistence/internal/config"
	"github.com/realworld-persistence/internal/database"
	"github.com/realworld-persistence/internal/repository"
	"github.com/realworld-persistence/internal/repository/mongodb"
	"github.com/realworld-persistence/internal/repository/postgres"
	"github.com/rs/zerolog"
)

const tagCachePrefix = "realworld"

// Open connects to the backend named by cfg.Storage.Backend. Postgres
// schemas are migrated before use. When Redis is configured the tag
// listing is cached.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repository.Store, error) {
	var store *repository.Store

	switch cfg.Storage.Backend {
	case config.BackendMongo:
		m, err := database.NewMongo(&cfg.Mongo, cfg.Log.Queries, log)
		if err != nil {
			return nil, err
		}
		store = mongodb.New(m.DB, log)

	case config.BackendPostgres:
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			return nil, err
		}
		db.LogQueries(cfg.Log.Queries)

		if err := db.RunMigrations(cfg.Storage.MigrationsPath); err != nil {
			db.Close()
			return nil, err
		}
		store = postgres.New(db, log)

	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}

	if !cfg.Redis.CacheEnabled() {
		return store, nil
	}

	tagCache, err := cache.NewRedisTagCache(cfg.Redis, tagCachePrefix)
	if err != nil {
		_ = store.Close(ctx)
		return nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TagTTL).Msg("Tag cache enabled")

	return repository.WithTagCache(store, tagCache, cfg.Redis.TagTTL, log), nil
}
