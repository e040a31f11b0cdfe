package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yieldward/yield-ward-service/internal/db/model"
)

func (db *Database) SaveUnprocessableMessage(ctx context.Context, messageBody, receipt string) error {
	document := model.NewUnprocessableMessageDocument(messageBody, receipt, time.Now().Unix())
	_, err := db.collection(model.UnprocessableMsgCollection).InsertOne(ctx, document)
	return err
}

// FindUnprocessableMessages lists archived messages oldest first so a replay
// delivers responses in their original order.
func (db *Database) FindUnprocessableMessages(ctx context.Context) ([]model.UnprocessableMessageDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "archived_at", Value: 1}})
	cursor, err := db.collection(model.UnprocessableMsgCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []model.UnprocessableMessageDocument{}
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (db *Database) DeleteUnprocessableMessage(ctx context.Context, Receipt interface{}) error {
	_, err := db.collection(model.UnprocessableMsgCollection).DeleteOne(ctx, bson.M{"receipt": Receipt})
	return err
}
