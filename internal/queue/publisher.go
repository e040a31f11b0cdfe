package queue

import (
	"context"
	"encoding/json"

	"github.com/yieldward/yield-ward-service/internal/gmp"
	"github.com/yieldward/yield-ward-service/internal/queue/client"
)

// GmpPublisher delivers outbound envelopes to the gateway through the
// outbound queue.
type GmpPublisher struct {
	client client.QueueClient
}

func NewGmpPublisher(queueClient client.QueueClient) *GmpPublisher {
	return &GmpPublisher{client: queueClient}
}

func (p *GmpPublisher) Send(ctx context.Context, envelope *gmp.Envelope) error {
	body, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return p.client.SendMessage(ctx, string(body))
}

var _ gmp.Transport = (*GmpPublisher)(nil)
