package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	retryWritesParam = "retryWrites=true"
	writeConcernArgs = "retryWrites=true&w=majority"

	errFailedConnectFmt = "failed to connect to mongodb: %w"
	errFailedPingFmt    = "failed to ping mongodb: %w"
)

type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// FormatURI appends retryable majority writes unless the URI already sets them.
func FormatURI(uri string) string {
	if strings.Contains(uri, retryWritesParam) {
		return uri
	}
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	return uri + sep + writeConcernArgs
}

func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*DB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(FormatURI(uri)).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf(errFailedConnectFmt, err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf(errFailedPingFmt, err)
	}

	return &DB{
		Client:   client,
		Database: client.Database(database),
	}, nil
}

func (db *DB) Close(ctx context.Context) error {
	if db.Client == nil {
		return nil
	}
	return db.Client.Disconnect(ctx)
}
