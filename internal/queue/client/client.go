package client

import (
	"context"

	"github.com/yieldward/yield-ward-service/internal/config"
)

type QueueMessage struct {
	Body          string
	Receipt       string
	RetryAttempts int32
}

func (m QueueMessage) IncrementRetryAttempts() int32 {
	m.RetryAttempts++
	return m.RetryAttempts
}

func (m QueueMessage) GetRetryAttempts() int32 {
	return m.RetryAttempts
}

// A common interface for queue clients regardless if it's a SQS, RabbitMQ, etc.
type QueueClient interface {
	SendMessage(ctx context.Context, messageBody string) error
	ReceiveMessages() (<-chan QueueMessage, error)
	DeleteMessage(receipt string) error
	// ReQueueMessage hands the message back to the queue after the
	// configured delay with its retry counter incremented.
	ReQueueMessage(ctx context.Context, message QueueMessage) error
	Stop() error
	GetQueueName() string
	Ping() error
}

func NewQueueClient(cfg *config.QueueConfig, queueName string) (QueueClient, error) {
	return NewRabbitMqClient(cfg, queueName)
}
