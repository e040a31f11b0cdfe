package model

import (
	"github.com/yieldward/yield-ward-service/internal/types"
)

type EventDocument struct {
	Seq        int64             `bson:"_id"`
	Type       string            `bson:"type"`
	Attributes []types.Attribute `bson:"attributes"`
	ArchivedAt int64             `bson:"archived_at"`
}

func NewEventDocument(seq uint64, event *types.Event, archivedAt int64) *EventDocument {
	return &EventDocument{
		Seq:        int64(seq),
		Type:       event.Type,
		Attributes: event.Attributes,
		ArchivedAt: archivedAt,
	}
}

type EventPagination struct {
	Seq int64 `json:"seq"`
}

func BuildEventPaginationToken(d EventDocument) (string, error) {
	return GetPaginationToken(EventPagination{Seq: d.Seq})
}
