// Package gmp builds the general message passing envelopes handed to the
// bridge transport. The envelope is an inter-chain token transfer whose memo
// carries the message for the remote yield contract.
package gmp

import (
	"context"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/yieldward/yield-ward-service/internal/types"
)

type MsgType int

const (
	// Pure carries only a payload.
	Pure MsgType = 1
	// WithToken carries a payload together with the transferred funds.
	WithToken MsgType = 2
)

type Fee struct {
	Amount    string `json:"amount"`
	Recipient string `json:"recipient"`
}

type Message struct {
	DestinationChain   string        `json:"destination_chain"`
	DestinationAddress string        `json:"destination_address"`
	Payload            hexutil.Bytes `json:"payload"`
	Type               MsgType       `json:"type"`
	Fee                *Fee          `json:"fee,omitempty"`
}

type Envelope struct {
	ChannelID      string           `json:"channel_id"`
	Gateway        string           `json:"gateway"`
	Funds          *types.Coin      `json:"funds,omitempty"`
	TimeoutSeconds uint64           `json:"timeout_seconds"`
	Memo           Message          `json:"memo"`
	ActionType     types.ActionType `json:"action_type"`
	ActionID       uint64           `json:"action_id"`
}

// Transport delivers envelopes to the bridge gateway.
type Transport interface {
	Send(ctx context.Context, envelope *Envelope) error
}

// NewEnvelope addresses payload to the token's remote yield contract. Without
// funds the message goes out as Pure.
func NewEnvelope(
	bridge *types.BridgeConfig, token *types.TokenConfig, payload []byte,
	funds *types.Coin, action types.ActionType, actionID uint64,
) *Envelope {
	msg := Message{
		DestinationChain:   token.Chain,
		DestinationAddress: token.EvmYieldContract,
		Payload:            payload,
		Type:               Pure,
	}
	if bridge.FeeAmount != "" {
		msg.Fee = &Fee{Amount: bridge.FeeAmount, Recipient: bridge.FeeRecipientAddress}
	}

	env := &Envelope{
		ChannelID:      bridge.ChannelID,
		Gateway:        bridge.GatewayAddress,
		TimeoutSeconds: bridge.TimeoutSeconds,
		ActionType:     action,
		ActionID:       actionID,
	}
	if funds != nil && !funds.IsZero() {
		coin := *funds
		env.Funds = &coin
		msg.Type = WithToken
	}
	env.Memo = msg
	return env
}
