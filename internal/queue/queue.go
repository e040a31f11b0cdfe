package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yieldward/yield-ward-service/internal/config"
	"github.com/yieldward/yield-ward-service/internal/observability/metrics"
	"github.com/yieldward/yield-ward-service/internal/queue/client"
	"github.com/yieldward/yield-ward-service/internal/queue/handlers"
	"github.com/yieldward/yield-ward-service/internal/services"
)

type Queues struct {
	Handlers                  *handlers.QueueHandler
	processingTimeout         time.Duration
	maxRetryAttempts          int32
	BridgeResponseQueueClient client.QueueClient
	GmpOutboundQueueClient    client.QueueClient
}

func New(cfg *config.QueueConfig, service *services.Services) (*Queues, error) {
	bridgeResponseQueueClient, err := client.NewQueueClient(cfg, client.BridgeResponseQueueName)
	if err != nil {
		return nil, fmt.Errorf("error while creating BridgeResponseQueueClient: %w", err)
	}
	gmpOutboundQueueClient, err := client.NewQueueClient(cfg, client.GmpOutboundQueueName)
	if err != nil {
		return nil, fmt.Errorf("error while creating GmpOutboundQueueClient: %w", err)
	}
	return NewWithClients(cfg, handlers.NewQueueHandler(service), bridgeResponseQueueClient, gmpOutboundQueueClient), nil
}

func NewWithClients(
	cfg *config.QueueConfig, queueHandler *handlers.QueueHandler,
	bridgeResponse, gmpOutbound client.QueueClient,
) *Queues {
	return &Queues{
		Handlers:                  queueHandler,
		processingTimeout:         cfg.QueueProcessingTimeout,
		maxRetryAttempts:          cfg.MsgMaxRetryAttempts,
		BridgeResponseQueueClient: bridgeResponse,
		GmpOutboundQueueClient:    gmpOutbound,
	}
}

// Start all message processing. The outbound queue is write-only for this
// service; its consumer is the bridge gateway.
func (q *Queues) StartReceivingMessages() {
	startQueueMessageProcessing(
		q.BridgeResponseQueueClient,
		q.Handlers.BridgeResponseHandler, q.Handlers.HandleUnprocessedMessage,
		q.maxRetryAttempts, q.processingTimeout,
	)
}

// Turn off all message processing
func (q *Queues) StopReceivingMessages() {
	for _, c := range []client.QueueClient{q.BridgeResponseQueueClient, q.GmpOutboundQueueClient} {
		if err := c.Stop(); err != nil {
			log.Error().Err(err).Str("queueName", c.GetQueueName()).Msg("error while stopping queue")
		}
	}
}

func (q *Queues) IsConnectionHealthy() error {
	var errorMessages []string
	for _, c := range []client.QueueClient{q.BridgeResponseQueueClient, q.GmpOutboundQueueClient} {
		if err := c.Ping(); err != nil {
			errorMessages = append(errorMessages, fmt.Sprintf("%s is not healthy: %v", c.GetQueueName(), err))
		}
	}
	if len(errorMessages) > 0 {
		return fmt.Errorf("queue connection error: %v", errorMessages)
	}
	return nil
}

func startQueueMessageProcessing(
	queueClient client.QueueClient,
	handler handlers.MessageHandler, unprocessableHandler handlers.UnprocessableMessageHandler,
	maxRetryAttempts int32, processingTimeout time.Duration,
) {
	messagesChan, err := queueClient.ReceiveMessages()
	log.Info().Str("queueName", queueClient.GetQueueName()).Msg("start receiving messages from queue")
	if err != nil {
		log.Fatal().Err(err).Str("queueName", queueClient.GetQueueName()).Msg("error setting up message channel from queue")
	}

	go func() {
		for message := range messagesChan {
			processMessage(queueClient, handler, unprocessableHandler, message, maxRetryAttempts, processingTimeout)
		}
		log.Info().Str("queueName", queueClient.GetQueueName()).Msg("stopped receiving messages from queue")
	}()
}

// processMessage runs one delivery through handler. Client errors and
// messages out of retry attempts are archived as unprocessable; server
// errors are requeued with a delay.
func processMessage(
	queueClient client.QueueClient,
	handler handlers.MessageHandler, unprocessableHandler handlers.UnprocessableMessageHandler,
	message client.QueueMessage, maxRetryAttempts int32, processingTimeout time.Duration,
) {
	queueName := queueClient.GetQueueName()
	logger := log.With().Str("traceId", uuid.NewString()).Str("queueName", queueName).Logger()
	ctx, cancel := context.WithTimeout(logger.WithContext(context.Background()), processingTimeout)
	defer cancel()

	handlerErr := handler(ctx, message.Body)
	if handlerErr == nil {
		if delErr := queueClient.DeleteMessage(message.Receipt); delErr != nil {
			logger.Error().Err(delErr).Msg("error while deleting message from queue")
		}
		metrics.RecordQueueMessage(queueName, metrics.Success)
		return
	}

	if handlerErr.IsClientError() || message.GetRetryAttempts() >= maxRetryAttempts {
		logger.Error().Err(handlerErr).
			Int32("retryAttempts", message.GetRetryAttempts()).
			Str("errorCode", handlerErr.ErrorCode.String()).
			Msg("message is unprocessable, archiving it")
		if saveErr := unprocessableHandler(ctx, message.Body, message.Receipt); saveErr != nil {
			// left unacknowledged so the broker redelivers it
			logger.Error().Err(saveErr).Msg("error while saving unprocessable message")
			metrics.RecordQueueMessage(queueName, metrics.Error)
			return
		}
		if delErr := queueClient.DeleteMessage(message.Receipt); delErr != nil {
			logger.Error().Err(delErr).Msg("error while deleting message from queue")
		}
		metrics.RecordQueueMessage(queueName, metrics.Unprocessed)
		return
	}

	logger.Warn().Err(handlerErr).Int32("retryAttempts", message.GetRetryAttempts()).Msg("requeueing message")
	if reqErr := queueClient.ReQueueMessage(ctx, message); reqErr != nil {
		logger.Error().Err(reqErr).Msg("error while requeueing message")
		metrics.RecordQueueMessage(queueName, metrics.Error)
		return
	}
	metrics.RecordQueueMessage(queueName, metrics.Requeued)
}
