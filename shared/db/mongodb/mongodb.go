package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/dfryer1193/postapi/shared/db"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	connectTimeout    = 10 * time.Second
	disconnectTimeout = 5 * time.Second
)

type MongoConfig struct {
	URI      string
	Database string
}

// MongoDB implements the db.Database interface for MongoDB
type MongoDB struct {
	cfg      *MongoConfig
	client   *mongo.Client
	database *mongo.Database
}

// NewMongoDB creates a new MongoDB database instance. The connection is not
// opened until Connect is called.
func NewMongoDB(cfg *MongoConfig) db.Database {
	return &MongoDB{
		cfg: cfg,
	}
}

// Connect opens the client and verifies the server is reachable.
func (m *MongoDB) Connect() error {
	if m.client != nil {
		return fmt.Errorf("database already connected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.cfg.URI))
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}

	m.client = client
	m.database = client.Database(m.cfg.Database)

	return nil
}

// Close disconnects the client.
func (m *MongoDB) Close() error {
	if m.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()

	err := m.client.Disconnect(ctx)
	m.client = nil
	m.database = nil
	return err
}

// DB returns the underlying *mongo.Database instance.
func (m *MongoDB) DB() *mongo.Database {
	return m.database
}
