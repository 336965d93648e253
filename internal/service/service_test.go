package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/realworld-persistence/internal/mocks"
	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/service"
	"github.com/rs/zerolog"
)

func TestStatsService_GetCounts(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewStore()
	svc := service.NewServices(store, zerolog.Nop()).Stats

	jane := &models.User{ID: models.NewID(), Email: "jane@example.com", Username: "jane", Password: "hash"}
	if _, err := store.User.BatchInsert(ctx, []*models.User{jane}); err != nil {
		t.Fatalf("BatchInsert failed: %v", err)
	}
	if _, err := store.Tag.BatchInsert(ctx, []*models.Tag{
		{ID: models.NewID(), Name: "java"},
		{ID: models.NewID(), Name: "go"},
	}); err != nil {
		t.Fatalf("BatchInsert failed: %v", err)
	}

	counts, err := svc.GetCounts(ctx)
	if err != nil {
		t.Fatalf("GetCounts failed: %v", err)
	}
	want := service.Counts{Users: 1, Tags: 2}
	if *counts != want {
		t.Errorf("Expected %+v, got %+v", want, *counts)
	}
}

func TestStatsService_GetCount(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewStore()
	svc := service.NewServices(store, zerolog.Nop()).Stats

	follow := &models.UserFollow{ID: models.NewID(), FollowerID: "a", FollowingID: "b"}
	if _, err := store.Follow.BatchInsert(ctx, []*models.UserFollow{follow}); err != nil {
		t.Fatalf("BatchInsert failed: %v", err)
	}

	for _, name := range []string{"userFollow", "user_follow"} {
		n, err := svc.GetCount(ctx, name)
		if err != nil {
			t.Fatalf("GetCount(%s) failed: %v", name, err)
		}
		if n != 1 {
			t.Errorf("GetCount(%s) = %d, want 1", name, n)
		}
	}

	if _, err := svc.GetCount(ctx, "jobs"); !errors.Is(err, service.ErrUnknownCollection) {
		t.Errorf("Expected ErrUnknownCollection, got %v", err)
	}
}

func TestStatsService_HealthCheck(t *testing.T) {
	mem := mocks.NewMemoryStore()
	svc := service.NewServices(mem.Store(), zerolog.Nop()).Stats

	if svc.Backend() != "memory" {
		t.Errorf("Expected memory backend, got %s", svc.Backend())
	}
	if err := svc.HealthCheck(context.Background()); err != nil {
		t.Errorf("Expected healthy backend, got %v", err)
	}

	mem.HealthError = errors.New("server selection timeout")
	if err := svc.HealthCheck(context.Background()); err == nil {
		t.Error("Expected health check to fail")
	}
}
