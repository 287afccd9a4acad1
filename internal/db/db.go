package db

import (
	"context"
	"time"

	"github.com/libshelf/apiserver/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultPingTimeout      = 5 * time.Second
	defaultConnectTimeout   = 10 * time.Second
	defaultSelectionTimeout = 5 * time.Second
)

// Open connects to the document store once at startup and returns a handle
// to the configured database. A failed ping is reported to the caller, who
// may choose to keep running; the driver reconnects lazily per operation.
func Open(ctx context.Context, cfg config.Config) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.Database.URL).
		SetConnectTimeout(defaultConnectTimeout).
		SetServerSelectionTimeout(defaultSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return client.Database(cfg.Database.Name), err
	}

	return client.Database(cfg.Database.Name), nil
}
