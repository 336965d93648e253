package service

import (
	"context"

	"github.com/realworld-persistence/internal/repository"
	"github.com/rs/zerolog"
)

// Counts holds the number of records per collection
type Counts struct {
	Users       int `json:"users"`
	Tags        int `json:"tags"`
	Articles    int `json:"articles"`
	ArticleTags int `json:"article_tags"`
	Comments    int `json:"comments"`
	Favorites   int `json:"favorites"`
	Follows     int `json:"follows"`
}

// StatsService defines the interface for store statistics
type StatsService interface {
	Backend() string
	HealthCheck(ctx context.Context) error
	GetCounts(ctx context.Context) (*Counts, error)
	GetCount(ctx context.Context, collection string) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Stats StatsService
}

// NewServices creates all services
func NewServices(store *repository.Store, log zerolog.Logger) *Services {
	return &Services{
		Stats: newStatsService(store, log),
	}
}
