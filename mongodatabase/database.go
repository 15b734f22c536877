package mongodatabase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Database connected mongo client and its default database
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// New connects to mongo, retrying up to MaxAttempts times
func New(ctx context.Context, config *DBConfig) (*Database, error) {
	client, err := connect(ctx, config.Host, config.MaxAttempts, config.RetryInterval*time.Second)
	if err != nil {
		return nil, err
	}
	return &Database{
		Client: client,
		DB:     client.Database(config.DBName),
	}, nil
}

func connect(ctx context.Context, uri string, maxAttempts int, retryInterval time.Duration) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri).
		SetRetryReads(true).
		SetRetryWrites(true).
		SetConnectTimeout(30 * time.Second)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err := mongo.Connect(ctx, clientOptions)
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				logrus.Info("mongo connection success")
				return client, nil
			}
			client.Disconnect(ctx)
		}
		lastErr = err
		logrus.Warnf("attempt %d to connect to mongo failed: %v", attempt, err)
		time.Sleep(retryInterval)
	}

	return nil, fmt.Errorf("failed to connect to mongo after %d attempts: %v", maxAttempts, lastErr)
}

// Close disconnects the client
func (d *Database) Close() error {
	return d.Client.Disconnect(context.TODO())
}
