package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yieldward/yield-ward-service/internal/db/model"
	"github.com/yieldward/yield-ward-service/internal/types"
)

func (db *Database) SaveEvent(ctx context.Context, seq uint64, event *types.Event) error {
	client := db.collection(model.EventCollection)
	document := model.NewEventDocument(seq, event, time.Now().Unix())

	// Relaying is at-least-once, so a replayed record overwrites its earlier copy
	_, err := client.ReplaceOne(
		ctx, bson.M{"_id": document.Seq}, document, options.Replace().SetUpsert(true),
	)
	return err
}

// FindEvents returns archived events newest first. An empty eventType
// matches every event.
func (db *Database) FindEvents(
	ctx context.Context, eventType string, paginationToken string,
) (*DbResultMap[model.EventDocument], error) {
	client := db.collection(model.EventCollection)

	filter := bson.M{}
	if eventType != "" {
		filter["type"] = eventType
	}
	options := options.Find().SetSort(bson.M{"_id": -1})
	options.SetLimit(db.cfg.MaxPaginationLimit)

	if paginationToken != "" {
		decodedToken, err := model.DecodePaginationToken[model.EventPagination](paginationToken)
		if err != nil {
			return nil, &InvalidPaginationTokenError{
				Message: "Invalid pagination token",
			}
		}
		filter["_id"] = bson.M{"$lt": decodedToken.Seq}
	}

	cursor, err := client.Find(ctx, filter, options)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []model.EventDocument
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return toPage(db.cfg.MaxPaginationLimit, events, model.BuildEventPaginationToken)
}
