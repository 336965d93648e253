package main

import (
	"context"
	"os"
	"time"

	"github.com/realworld-persistence/internal/config"
	"github.com/realworld-persistence/internal/seed"
	"github.com/realworld-persistence/internal/storage"
	"github.com/realworld-persistence/pkg/logger"
)

const seedTimeout = 2 * time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("realworld-seed", "info", "json")
		log.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}

	log := logger.New("realworld-seed", cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.Storage.Backend).Msg("Failed to open store")
		return 1
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to close store")
		}
	}()

	result, err := seed.NewLoader(store, log).Run(ctx, seed.NewDataset())
	if err != nil {
		log.Error().Err(err).Msg("Seeding failed")
		return 1
	}

	log.Info().
		Int("users", result.Users).
		Int("tags", result.Tags).
		Int("articles", result.Articles).
		Int("article_tags", result.ArticleTags).
		Int("comments", result.Comments).
		Int("favorites", result.Favorites).
		Int("follows", result.Follows).
		Msg("Seed completed")
	return 0
}
