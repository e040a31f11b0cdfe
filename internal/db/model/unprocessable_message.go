package model

// UnprocessableMessageDocument is an inbound queue message that was rejected
// or ran out of retries, kept for inspection and replay.
type UnprocessableMessageDocument struct {
	MessageBody string `bson:"message_body"`
	Receipt     string `bson:"receipt"`
	ArchivedAt  int64  `bson:"archived_at"`
}

func NewUnprocessableMessageDocument(messageBody, receipt string, archivedAt int64) *UnprocessableMessageDocument {
	return &UnprocessableMessageDocument{
		MessageBody: messageBody,
		Receipt:     receipt,
		ArchivedAt:  archivedAt,
	}
}
