package storage

import (
	"context"
	"testing"

	"github.com/realworld-persistence/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestOpen_UnsupportedBackend(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Backend: "cassandra"}}

	store, err := Open(context.Background(), cfg, zerolog.Nop())
	assert.Nil(t, store)
	assert.ErrorContains(t, err, `unsupported storage backend "cassandra"`)
}
