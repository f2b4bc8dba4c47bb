package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Config holds the settings for establishing the MongoDB connection backing
// the identity and audit stores.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect dials MongoDB, confirms connectivity with a ping, and returns the
// client together with the selected database. Timeout <= 0 falls back to
// connectTimeout.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
