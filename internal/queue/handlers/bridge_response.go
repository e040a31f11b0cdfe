package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yieldward/yield-ward-service/internal/queue/client"
	"github.com/yieldward/yield-ward-service/internal/services"
	"github.com/yieldward/yield-ward-service/internal/types"
)

// BridgeResponseHandler feeds a bridge response into the engine. Malformed
// messages are client errors and will not be retried.
func (qh *QueueHandler) BridgeResponseHandler(ctx context.Context, messageBody string) *types.Error {
	var msg client.BridgeResponseMessage
	if err := json.Unmarshal([]byte(messageBody), &msg); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal the message body into BridgeResponseMessage")
		return types.NewError(http.StatusBadRequest, types.BadRequest, err)
	}

	payload, err := msg.DecodePayload()
	if err != nil {
		return types.NewError(http.StatusBadRequest, types.InvalidMessagePayload, err)
	}
	funds, err := msg.DecodeFunds()
	if err != nil {
		return types.NewError(http.StatusBadRequest, types.InvalidFundsShape, err)
	}

	result, e := qh.Services.Execute(ctx, &services.HandleResponseCommand{
		Sender:        msg.Sender,
		SourceChain:   msg.SourceChain,
		SourceAddress: msg.SourceAddress,
		Payload:       payload,
		Funds:         funds,
	})
	if e != nil {
		return e
	}
	for _, event := range result.Events {
		log.Ctx(ctx).Info().Str("event", event.Type).Msg("bridge response applied")
	}
	return nil
}
