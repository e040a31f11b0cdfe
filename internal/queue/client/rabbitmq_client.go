package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/yieldward/yield-ward-service/internal/config"
)

const (
	dlxName                = "common_dlx"
	delayedQueueSuffix     = "_delay"
	retryAttemptsHeaderKey = "x-processing-attempts"
	defaultQueueType       = "quorum"
)

type RabbitMqClient struct {
	connection       *amqp.Connection
	channel          *amqp.Channel
	queueName        string
	stopCh           chan struct{}
	reQueueDelayTime int64
}

func NewRabbitMqClient(cfg *config.QueueConfig, queueName string) (*RabbitMqClient, error) {
	amqpURI := fmt.Sprintf("amqp://%s:%s@%s", cfg.QueueUser, cfg.QueuePassword, cfg.Url)

	conn, err := amqp.Dial(amqpURI)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	queueType := cfg.QueueType
	if queueType == "" {
		queueType = defaultQueueType
	}

	// Messages expiring in the delay queue are routed back to the main
	// queue through the dead letter exchange.
	if err := ch.ExchangeDeclare(dlxName, "direct", true, false, false, false, nil); err != nil {
		return nil, err
	}
	_, err = ch.QueueDeclare(queueName, true, false, false, false, amqp.Table{
		"x-queue-type": queueType,
	})
	if err != nil {
		return nil, err
	}
	if err := ch.QueueBind(queueName, queueName, dlxName, false, nil); err != nil {
		return nil, err
	}

	delayTime := cfg.ReQueueDelayTime.Milliseconds()
	_, err = ch.QueueDeclare(queueName+delayedQueueSuffix, true, false, false, false, amqp.Table{
		"x-queue-type":              queueType,
		"x-dead-letter-exchange":    dlxName,
		"x-dead-letter-routing-key": queueName,
		"x-message-ttl":             delayTime,
	})
	if err != nil {
		return nil, err
	}

	return &RabbitMqClient{
		connection:       conn,
		channel:          ch,
		queueName:        queueName,
		stopCh:           make(chan struct{}),
		reQueueDelayTime: delayTime,
	}, nil
}

// Ping checks the health of the RabbitMQ infrastructure.
func (c *RabbitMqClient) Ping() error {
	if c.connection.IsClosed() {
		return errors.New("rabbitMQ connection is closed")
	}
	if c.channel.IsClosed() {
		return errors.New("rabbitMQ channel is closed")
	}
	return nil
}

func (c *RabbitMqClient) ReceiveMessages() (<-chan QueueMessage, error) {
	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return nil, err
	}
	output := make(chan QueueMessage)
	go func() {
		defer close(output)
		for {
			select {
			case d, ok := <-msgs:
				if !ok {
					return
				}
				var attempts int32
				if v, ok := d.Headers[retryAttemptsHeaderKey].(int32); ok {
					attempts = v
				}
				output <- QueueMessage{
					Body:          string(d.Body),
					Receipt:       strconv.FormatUint(d.DeliveryTag, 10),
					RetryAttempts: attempts,
				}
			case <-c.stopCh:
				return
			}
		}
	}()

	return output, nil
}

// DeleteMessage acknowledges the delivery identified by receipt.
func (c *RabbitMqClient) DeleteMessage(receipt string) error {
	deliveryTag, err := strconv.ParseUint(receipt, 10, 64)
	if err != nil {
		return err
	}
	return c.channel.Ack(deliveryTag, false)
}

func (c *RabbitMqClient) ReQueueMessage(ctx context.Context, message QueueMessage) error {
	err := c.publish(ctx, c.queueName+delayedQueueSuffix, message.Body, amqp.Table{
		retryAttemptsHeaderKey: message.IncrementRetryAttempts(),
	})
	if err != nil {
		return fmt.Errorf("failed to requeue message: %w", err)
	}
	return c.DeleteMessage(message.Receipt)
}

func (c *RabbitMqClient) SendMessage(ctx context.Context, messageBody string) error {
	return c.publish(ctx, c.queueName, messageBody, nil)
}

func (c *RabbitMqClient) publish(ctx context.Context, queueName, messageBody string, headers amqp.Table) error {
	return c.channel.PublishWithContext(ctx,
		"",        // exchange
		queueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    uuid.NewString(),
			Body:         []byte(messageBody),
			Headers:      headers,
		})
}

func (c *RabbitMqClient) Stop() error {
	close(c.stopCh)
	if err := c.channel.Close(); err != nil {
		return err
	}
	return c.connection.Close()
}

func (c *RabbitMqClient) GetQueueName() string {
	return c.queueName
}
