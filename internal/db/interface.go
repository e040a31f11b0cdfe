package db

import (
	"context"

	"github.com/yieldward/yield-ward-service/internal/db/model"
	"github.com/yieldward/yield-ward-service/internal/types"
)

type DBClient interface {
	Ping(ctx context.Context) error
	SaveUnprocessableMessage(ctx context.Context, messageBody, receipt string) error
	FindUnprocessableMessages(ctx context.Context) ([]model.UnprocessableMessageDocument, error)
	DeleteUnprocessableMessage(ctx context.Context, Receipt interface{}) error
	// SaveEvent archives an engine event under its outbox sequence. Saving
	// the same sequence twice keeps a single document.
	SaveEvent(ctx context.Context, seq uint64, event *types.Event) error
	FindEvents(
		ctx context.Context, eventType string, paginationToken string,
	) (*DbResultMap[model.EventDocument], error)
}
