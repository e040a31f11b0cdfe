package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yieldward/yield-ward-service/internal/config"
)

const connectTimeout = 10 * time.Second

// Database is the mongo archive of relayed events and of inbound messages
// that could not be processed. The engine state itself lives in the local
// store, never here.
type Database struct {
	DbName string
	Client *mongo.Client
	cfg    config.DbConfig
}

type DbResultMap[T any] struct {
	Data            []T    `json:"data"`
	PaginationToken string `json:"paginationToken"`
}

func New(ctx context.Context, cfg config.DbConfig) (*Database, error) {
	clientOps := options.Client().ApplyURI(cfg.Address).SetConnectTimeout(connectTimeout)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return nil, err
	}

	return &Database{
		DbName: cfg.DbName,
		Client: client,
		cfg:    cfg,
	}, nil
}

func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

func (db *Database) collection(name string) *mongo.Collection {
	return db.Client.Database(db.DbName).Collection(name)
}

// toPage wraps one page of documents. A page shorter than the limit is the
// last one and carries no token.
func toPage[T any](limit int64, docs []T, cursorOf func(T) (string, error)) (*DbResultMap[T], error) {
	page := &DbResultMap[T]{Data: docs}
	if len(docs) == 0 || int64(len(docs)) < limit {
		return page, nil
	}
	token, err := cursorOf(docs[len(docs)-1])
	if err != nil {
		return nil, err
	}
	page.PaginationToken = token
	return page, nil
}
