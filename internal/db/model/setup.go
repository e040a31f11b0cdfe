package model

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yieldward/yield-ward-service/internal/config"
)

const (
	UnprocessableMsgCollection = "unprocessable_messages"
	EventCollection            = "events"
)

const (
	setupTimeout        = 10 * time.Second
	namespaceExistsCode = 48
)

type collectionSpec struct {
	name    string
	indexes []mongo.IndexModel
}

var collections = []collectionSpec{
	{
		name: UnprocessableMsgCollection,
		indexes: []mongo.IndexModel{
			{Keys: bson.D{{Key: "archived_at", Value: 1}}},
		},
	},
	{
		name: EventCollection,
		indexes: []mongo.IndexModel{
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "_id", Value: -1}}},
		},
	},
}

// Setup creates the archive collections and their indexes. Existing
// collections and indexes are kept.
func Setup(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Db.Address))
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to disconnect setup client")
		}
	}()

	database := client.Database(cfg.Db.DbName)
	for _, spec := range collections {
		if err := createCollection(ctx, database, spec.name); err != nil {
			return err
		}
		if len(spec.indexes) == 0 {
			continue
		}
		if _, err := database.Collection(spec.name).Indexes().CreateMany(ctx, spec.indexes); err != nil {
			return err
		}
		log.Debug().Str("collection", spec.name).Msg("indexes ensured")
	}

	log.Info().Msg("Collections and Indexes created successfully.")
	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, name string) error {
	err := database.CreateCollection(ctx, name)
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == namespaceExistsCode {
		log.Debug().Str("collection", name).Msg("collection already exists")
		return nil
	}
	return err
}
