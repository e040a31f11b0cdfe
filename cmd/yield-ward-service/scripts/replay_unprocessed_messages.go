package scripts

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/yieldward/yield-ward-service/internal/db"
	"github.com/yieldward/yield-ward-service/internal/queue/client"
)

// ReplayUnprocessableMessages puts every archived bridge response back on the
// inbound queue and drops it from the archive once it was sent.
func ReplayUnprocessableMessages(ctx context.Context, queueClient client.QueueClient, db db.DBClient) error {
	unprocessableMessages, err := db.FindUnprocessableMessages(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve unprocessable messages: %w", err)
	}

	messageCount := len(unprocessableMessages)
	log.Info().Int("count", messageCount).Msg("found unprocessable messages")
	if messageCount == 0 {
		return errors.New("no unprocessable messages to replay")
	}

	for _, msg := range unprocessableMessages {
		if err := queueClient.SendMessage(ctx, msg.MessageBody); err != nil {
			return fmt.Errorf("failed to resend message %s: %w", msg.Receipt, err)
		}
		if err := db.DeleteUnprocessableMessage(ctx, msg.Receipt); err != nil {
			return fmt.Errorf("failed to delete unprocessable message %s: %w", msg.Receipt, err)
		}
	}

	log.Info().Str("queue", queueClient.GetQueueName()).Msg("Reprocessing of unprocessable messages completed.")
	return nil
}
