package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/realworld-persistence/internal/cache"
	"github.com/realworld-persistence/internal/models"
)

// MockTagCache is an in-memory implementation of cache.TagCache
type MockTagCache struct {
	mu     sync.Mutex
	tags   []*models.Tag
	cached bool

	GetError        error
	SetError        error
	GetCalls        int
	SetCalls        int
	InvalidateCalls int
	LastTTL         time.Duration
	Closed          bool
}

// Verify interface compliance
var _ cache.TagCache = (*MockTagCache)(nil)

func NewMockTagCache() *MockTagCache {
	return &MockTagCache{}
}

func (m *MockTagCache) GetTags(ctx context.Context) ([]*models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetError != nil {
		return nil, m.GetError
	}
	if !m.cached {
		return nil, cache.ErrCacheMiss
	}
	return m.tags, nil
}

func (m *MockTagCache) SetTags(ctx context.Context, tags []*models.Tag, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetError != nil {
		return m.SetError
	}
	m.tags = tags
	m.cached = true
	m.LastTTL = ttl
	return nil
}

func (m *MockTagCache) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InvalidateCalls++
	m.tags = nil
	m.cached = false
	return nil
}

func (m *MockTagCache) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}
