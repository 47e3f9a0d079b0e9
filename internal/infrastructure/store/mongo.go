package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client wraps a MongoDB connection with explicit lifecycle management.
// It is constructed once at process start and closed at shutdown.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes a MongoDB connection, verifies it with a ping, and
// selects the named database.
func Connect(ctx context.Context, uri, dbName string) (*Client, error) {
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := cli.Ping(ctx, nil); err != nil {
		_ = cli.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &Client{client: cli, db: cli.Database(dbName)}, nil
}

// Database returns the selected database handle.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Close disconnects the underlying client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Health describes current store connectivity. Advisory only.
type Health struct {
	Connected   bool     `json:"connected"`
	Database    string   `json:"database,omitempty"`
	Collections []string `json:"collections,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// Health pings the server and lists up to ten collection names.
func (c *Client) Health(ctx context.Context) Health {
	h := Health{Database: c.db.Name()}
	if err := c.client.Ping(ctx, nil); err != nil {
		h.Error = err.Error()
		return h
	}
	h.Connected = true
	names, err := c.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		h.Error = err.Error()
		return h
	}
	if len(names) > 10 {
		names = names[:10]
	}
	h.Collections = names
	return h
}
