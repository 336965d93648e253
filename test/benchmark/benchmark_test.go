package benchmark

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/realworld-persistence/internal/mocks"
	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/seed"
	"github.com/realworld-persistence/internal/validation"
	"github.com/rs/zerolog"
)

func makeUsers(n int) []*models.User {
	users := make([]*models.User, n)
	for i := range users {
		users[i] = &models.User{
			ID:        models.NewID(),
			Email:     fmt.Sprintf("user%06d@test.com", i),
			Username:  fmt.Sprintf("user%06d", i),
			Password:  seed.DemoPasswordHash,
			CreatedAt: time.Now(),
		}
	}
	return users
}

// BenchmarkSeedRun benchmarks a full reset, insert and index cycle
func BenchmarkSeedRun(b *testing.B) {
	loader := seed.NewLoader(mocks.NewStore(), zerolog.Nop())
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := loader.Run(ctx, seed.NewDataset()); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkBatchInsert benchmarks indexed batch inserts
func BenchmarkBatchInsert(b *testing.B) {
	users := makeUsers(1000)
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		store := mocks.NewStore()
		if err := store.EnsureIndexes(ctx); err != nil {
			b.Fatal(err)
		}
		b.StartTimer()

		if _, err := store.User.BatchInsert(ctx, users); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkValidation benchmarks user validation throughput
func BenchmarkValidation(b *testing.B) {
	users := makeUsers(1000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validator := validation.NewValidator()
		for _, u := range users {
			if errs := validator.ValidateUser(u); len(errs) > 0 {
				b.Fatal(errs)
			}
			validator.AddUser(u)
		}
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkDatasetValidate benchmarks the seed pre-flight check
func BenchmarkDatasetValidate(b *testing.B) {
	ds := seed.NewDataset()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := ds.Validate(); err != nil {
			b.Fatal(err)
		}
	}
}
