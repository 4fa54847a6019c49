// Package mongo предоставляет подключение к MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"goaccounts/pkg/logger"
)

const (
	LogConnecting = "connecting to mongodb"
	LogConnected  = "connected to mongodb"
	LogClosing    = "closing mongodb connection"

	ErrConnect = "failed to connect to mongodb"
	ErrPing    = "failed to ping mongodb"
)

// ErrEmptyURI возвращается, если строка подключения не задана.
var ErrEmptyURI = errors.New("mongodb uri is empty")

// Config - параметры подключения к MongoDB.
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// Client оборачивает клиент драйвера MongoDB.
type Client struct {
	client *mongo.Client
	cfg    Config
}

// NewClient подключается к MongoDB и проверяет соединение.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.URI == "" {
		return nil, ErrEmptyURI
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	logger.Log(ctx).Info(ctx, LogConnecting, zap.String("database", cfg.Database))

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetConnectTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%s: %w", ErrPing, err)
	}

	logger.Log(ctx).Info(ctx, LogConnected)
	return &Client{client: client, cfg: cfg}, nil
}

// Collection возвращает настроенную коллекцию.
func (c *Client) Collection() *mongo.Collection {
	return c.client.Database(c.cfg.Database).Collection(c.cfg.Collection)
}

// Close закрывает соединение.
func (c *Client) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	return c.client.Disconnect(ctx)
}
