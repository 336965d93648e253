package mocks

import (
	"context"

	"github.com/realworld-persistence/internal/service"
)

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	BackendName string
	HealthError error
	CountsError error
	Counts      service.Counts
}

// Verify interface compliance
var _ service.StatsService = (*MockStatsService)(nil)

func NewMockStatsService() *MockStatsService {
	return &MockStatsService{BackendName: "memory"}
}

func (m *MockStatsService) Backend() string {
	return m.BackendName
}

func (m *MockStatsService) HealthCheck(ctx context.Context) error {
	return m.HealthError
}

func (m *MockStatsService) GetCounts(ctx context.Context) (*service.Counts, error) {
	if m.CountsError != nil {
		return nil, m.CountsError
	}
	counts := m.Counts
	return &counts, nil
}

func (m *MockStatsService) GetCount(ctx context.Context, collection string) (int, error) {
	if m.CountsError != nil {
		return 0, m.CountsError
	}
	switch collection {
	case "users":
		return m.Counts.Users, nil
	case "tag":
		return m.Counts.Tags, nil
	case "article":
		return m.Counts.Articles, nil
	case "articleTag", "article_tag":
		return m.Counts.ArticleTags, nil
	case "articleComment", "article_comment":
		return m.Counts.Comments, nil
	case "articleFavorite", "article_favorite":
		return m.Counts.Favorites, nil
	case "userFollow", "user_follow":
		return m.Counts.Follows, nil
	}
	return 0, service.ErrUnknownCollection
}
