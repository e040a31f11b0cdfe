package handlers

import (
	"net/http"

	"github.com/yieldward/yield-ward-service/internal/services"
	"github.com/yieldward/yield-ward-service/internal/types"
	"github.com/yieldward/yield-ward-service/internal/utils"
)

type StakeRequestPayload struct {
	Sender     string        `json:"sender"`
	TokenDenom string        `json:"token_denom"`
	Funds      []CoinPayload `json:"funds"`
}

type UnstakeRequestPayload struct {
	Sender     string        `json:"sender"`
	LptAddress string        `json:"lpt_address"`
	Amount     string        `json:"amount"`
	Funds      []CoinPayload `json:"funds"`
}

type ResponseRequestPayload struct {
	Sender        string        `json:"sender"`
	SourceChain   string        `json:"source_chain"`
	SourceAddress string        `json:"source_address"`
	Payload       string        `json:"payload"`
	Funds         []CoinPayload `json:"funds"`
}

type ReinitRequestPayload struct {
	Sender     string        `json:"sender"`
	TokenDenom string        `json:"token_denom"`
	Funds      []CoinPayload `json:"funds"`
}

// Stake godoc
// @Summary Stake a deposit token
// @Description Takes custody of the attached coin and forwards it to the token's remote yield contract.
// @Accept json
// @Produce json
// @Param payload body StakeRequestPayload true "Stake request"
// @Success 200 {object} PublicResponse[ExecuteResponse] "Emitted events"
// @Failure 400 {object} types.Error "Invalid request or funds"
// @Failure 403 {object} types.Error "Staking is disabled for the token"
// @Router /v1/stake [post]
func (h *Handler) Stake(request *http.Request) (*Result, *types.Error) {
	payload, err := decodeRequestPayload[StakeRequestPayload](request)
	if err != nil {
		return nil, err
	}
	funds, err := decodeCoins(payload.Funds)
	if err != nil {
		return nil, err
	}
	if payload.TokenDenom != "" {
		for _, coin := range funds {
			if coin.Denom != payload.TokenDenom {
				return nil, types.NewInvalidTokenError(coin.Denom, payload.TokenDenom)
			}
		}
	}
	return h.execute(request, &services.StakeCommand{Sender: payload.Sender, Funds: funds})
}

// Unstake godoc
// @Summary Unstake share tokens
// @Description Queues the redemption of share tokens already held by the service. Funds pay the relay fee.
// @Accept json
// @Produce json
// @Param payload body UnstakeRequestPayload true "Unstake request"
// @Success 200 {object} PublicResponse[ExecuteResponse] "Emitted events"
// @Failure 400 {object} types.Error "Invalid request or funds"
// @Failure 404 {object} types.Error "Unknown share token"
// @Router /v1/unstake [post]
func (h *Handler) Unstake(request *http.Request) (*Result, *types.Error) {
	payload, err := decodeRequestPayload[UnstakeRequestPayload](request)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmountField("amount", payload.Amount)
	if err != nil {
		return nil, err
	}
	funds, err := decodeCoins(payload.Funds)
	if err != nil {
		return nil, err
	}
	return h.execute(request, &services.UnstakeCommand{
		Sender:     payload.Sender,
		LptAddress: payload.LptAddress,
		Amount:     amount,
		Funds:      funds,
	})
}

// HandleResponse godoc
// @Summary Deliver a bridge response
// @Description Applies a response from a remote yield contract. Only the configured bridge may call it.
// @Accept json
// @Produce json
// @Param payload body ResponseRequestPayload true "Bridge response, payload as 0x hex"
// @Success 200 {object} PublicResponse[ExecuteResponse] "Emitted events"
// @Failure 400 {object} types.Error "Malformed payload or funds"
// @Failure 403 {object} types.Error "Sender is not the bridge"
// @Router /v1/response [post]
func (h *Handler) HandleResponse(request *http.Request) (*Result, *types.Error) {
	payload, err := decodeRequestPayload[ResponseRequestPayload](request)
	if err != nil {
		return nil, err
	}
	data, decodeErr := utils.DecodePayloadHex(payload.Payload)
	if decodeErr != nil {
		return nil, types.NewError(http.StatusBadRequest, types.InvalidMessagePayload, decodeErr)
	}
	funds, err := decodeCoins(payload.Funds)
	if err != nil {
		return nil, err
	}
	return h.execute(request, &services.HandleResponseCommand{
		Sender:        payload.Sender,
		SourceChain:   payload.SourceChain,
		SourceAddress: payload.SourceAddress,
		Payload:       data,
		Funds:         funds,
	})
}

// RequestReinit godoc
// @Summary Request settlement of registered unstakes
// @Description Asks the token's remote yield contract to settle the unstakes it has registered. Admin only.
// @Accept json
// @Produce json
// @Param payload body ReinitRequestPayload true "Reinit request"
// @Success 200 {object} PublicResponse[ExecuteResponse] "Emitted events"
// @Failure 403 {object} types.Error "Sender is not the owner"
// @Router /v1/reinit [post]
func (h *Handler) RequestReinit(request *http.Request) (*Result, *types.Error) {
	payload, err := decodeRequestPayload[ReinitRequestPayload](request)
	if err != nil {
		return nil, err
	}
	funds, err := decodeCoins(payload.Funds)
	if err != nil {
		return nil, err
	}
	return h.execute(request, &services.RequestReinitCommand{
		Sender: payload.Sender,
		Denom:  payload.TokenDenom,
		Funds:  funds,
	})
}
