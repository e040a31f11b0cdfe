package client

import (
	"fmt"

	"github.com/yieldward/yield-ward-service/internal/types"
	"github.com/yieldward/yield-ward-service/internal/utils"
)

const (
	BridgeResponseQueueName string = "bridge_response_queue"
	GmpOutboundQueueName    string = "gmp_outbound_queue"
)

type CoinMessage struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// BridgeResponseMessage is a response delivered by the bridge. Payload is
// the 0x hex of the envelope: the routing tag followed by the response body.
type BridgeResponseMessage struct {
	Sender        string        `json:"sender"`
	SourceChain   string        `json:"source_chain"`
	SourceAddress string        `json:"source_address"`
	Payload       string        `json:"payload"`
	Funds         []CoinMessage `json:"funds"`
}

func (m *BridgeResponseMessage) DecodePayload() ([]byte, error) {
	return utils.DecodePayloadHex(m.Payload)
}

func (m *BridgeResponseMessage) DecodeFunds() (types.Coins, error) {
	coins := make(types.Coins, 0, len(m.Funds))
	for _, f := range m.Funds {
		if f.Denom == "" {
			return nil, fmt.Errorf("coin without denom")
		}
		amount, err := types.ParseAmount(f.Amount)
		if err != nil {
			return nil, err
		}
		coins = append(coins, types.Coin{Denom: f.Denom, Amount: amount})
	}
	return coins, nil
}
