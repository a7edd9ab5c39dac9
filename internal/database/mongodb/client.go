package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skillswap/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection  = "users"
	SkillsCollection = "skills"
)

type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Client, error) {
	uri := strings.TrimSpace(cfg.URL)
	if uri == "" {
		return nil, fmt.Errorf("empty database url")
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().ApplyURI(uri)
	if cfg.PoolMaxConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.PoolMaxConns))
	}
	if cfg.PoolMinConns > 0 {
		opts.SetMinPoolSize(uint64(cfg.PoolMinConns))
	}
	if cfg.PoolMaxConnIdleTime > 0 {
		opts.SetMaxConnIdleTime(cfg.PoolMaxConnIdleTime)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Client{client: client, db: client.Database(cfg.MongoDatabase)}, nil
}

func (c *Client) Database() *mongo.Database {
	return c.db
}

func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes that back email, username and
// skill-name uniqueness. It is idempotent.
func (c *Client) EnsureIndexes(ctx context.Context) ([]string, error) {
	specs := []struct {
		coll string
		key  string
	}{
		{UsersCollection, "email"},
		{UsersCollection, "username"},
		{SkillsCollection, "name"},
	}

	names := make([]string, 0, len(specs))
	for _, s := range specs {
		name, err := c.Collection(s.coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: s.key, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(s.coll + "_" + s.key + "_key"),
		})
		if err != nil {
			return names, fmt.Errorf("create index %s.%s: %w", s.coll, s.key, err)
		}
		names = append(names, name)
	}
	return names, nil
}
