package database

import (
	"context"
	"fmt"

	"github.com/realworld-persistence/internal/config"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDB wraps a connected client and the selected database
type MongoDB struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongo connects to MongoDB and verifies the connection
func NewMongo(cfg *config.MongoConfig, logQueries bool, log zerolog.Logger) (*MongoDB, error) {
	log = log.With().Str("component", "mongodb").Logger()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout)
	if logQueries {
		opts.SetMonitor(CommandMonitor(log))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Info().
		Str("database", cfg.Database).
		Msg("MongoDB connection established")

	return &MongoDB{
		Client: client,
		DB:     client.Database(cfg.Database),
	}, nil
}

// CommandMonitor logs every command sent to the server at debug level
func CommandMonitor(log zerolog.Logger) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			log.Debug().
				Str("command", evt.CommandName).
				Str("database", evt.DatabaseName).
				Int64("request_id", evt.RequestID).
				Msg("MongoDB command")
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			log.Debug().
				Str("command", evt.CommandName).
				Str("failure", evt.Failure).
				Dur("duration", evt.Duration).
				Msg("MongoDB command failed")
		},
	}
}
