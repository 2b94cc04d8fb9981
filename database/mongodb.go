package database

import (
	"context"
	"fmt"
	"time"

	"pickem-app-go/config"
	"pickem-app-go/logging"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB wraps the client and the application database handle. The
// configured timeout bounds connect, ping and disconnect calls.
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	timeout  time.Duration
	logger   *logging.Logger
}

// connectionURI builds the mongodb:// URI; credentials authenticate against
// the application database, not admin.
func connectionURI(cfg config.DatabaseConfig) string {
	if cfg.Username != "" && cfg.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=%s",
			cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.Database)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s", cfg.Host, cfg.Port, cfg.Database)
}

// NewMongoConnection connects, pings and returns a handle on the configured
// database.
func NewMongoConnection(cfg config.DatabaseConfig) (*MongoDB, error) {
	logger := logging.WithPrefix("MongoDB")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if cfg.Username != "" && cfg.Password != "" {
		logger.Infof("Connecting to %s:%s as user %s", cfg.Host, cfg.Port, cfg.Username)
	} else {
		logger.Infof("Connecting to %s:%s without authentication", cfg.Host, cfg.Port)
	}

	opts := options.Client().ApplyURI(connectionURI(cfg)).SetConnectTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Errorf("Failed to connect: %v", err)
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		logger.Errorf("Failed to ping: %v", err)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Infof("Connected, database=%s", cfg.Database)
	return &MongoDB{
		client:   client,
		database: client.Database(cfg.Database),
		timeout:  timeout,
		logger:   logger,
	}, nil
}

func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	if err := m.client.Disconnect(ctx); err != nil {
		m.logger.Errorf("Error disconnecting: %v", err)
		return err
	}
	m.logger.Info("Connection closed")
	return nil
}

func (m *MongoDB) TestConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	if err := m.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("MongoDB ping failed: %w", err)
	}
	return nil
}

func (m *MongoDB) GetCollection(name string) *mongo.Collection {
	return m.database.Collection(name)
}
