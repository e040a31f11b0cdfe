package handlers

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/yieldward/yield-ward-service/internal/services"
	"github.com/yieldward/yield-ward-service/internal/types"
)

type AddTokenRequestPayload struct {
	Sender string            `json:"sender"`
	Denom  string            `json:"denom"`
	Config types.TokenConfig `json:"config"`
}

type UpdateTokenRequestPayload struct {
	Sender string            `json:"sender"`
	Config types.TokenConfig `json:"config"`
}

type FailStakeRequestPayload struct {
	Sender  string `json:"sender"`
	Denom   string `json:"denom"`
	StakeID uint64 `json:"stake_id"`
}

type FailUnstakeRequestPayload struct {
	Sender    string `json:"sender"`
	Denom     string `json:"denom"`
	UnstakeID uint64 `json:"unstake_id"`
}

type MintSharesRequestPayload struct {
	Sender     string `json:"sender"`
	Recipient  string `json:"recipient"`
	LptAddress string `json:"lpt_address"`
	Amount     string `json:"amount"`
}

type SenderRequestPayload struct {
	Sender string `json:"sender"`
}

type UpdateContractConfigRequestPayload struct {
	Sender string               `json:"sender"`
	Config types.ContractConfig `json:"config"`
}

type UpdateBridgeConfigRequestPayload struct {
	Sender string             `json:"sender"`
	Config types.BridgeConfig `json:"config"`
}

// AddToken godoc
// @Summary Register a token
// @Accept json
// @Produce json
// @Param payload body AddTokenRequestPayload true "Token"
// @Success 200 {object} PublicResponse[ExecuteResponse] "Emitted events"
// @Failure 400 {object} types.Error "Invalid token config"
// @Failure 403 {object} types.Error "Sender is not the owner"
// @Failure 409 {object} types.Error "Token or index already exists"
// @Router /v1/admin/tokens [post]
func (h *Handler) AddToken(request *http.Request) (*Result, *types.Error) {
	payload, err := decodeRequestPayload[AddTokenRequestPayload](request)
	if err != nil {
		return nil, err
	}
	return h.execute(request, &services.AddTokenCommand{
		Sender: payload.Sender, Denom: payload.Denom, Config: payload.Config,
	})
}

// UpdateTokenConfig godoc
// @Summary Replace the config of a token
// @Accept json
// @Produce json
// @Param denom path string true "Token denom"
// @Param payload body UpdateTokenRequestPayload true "New config"
// @Success 200 {object} PublicResponse[ExecuteResponse] "Emitted events"
// @Failure 403 {object} types.Error "Sender is not the owner"
// @Failure 404 {object} types.Error "Unknown token"
// @Router /v1/admin/tokens/{denom} [put]
func (h *Handler) UpdateTokenConfig(request *http.Request) (*Result, *types.Error) {
	payload, err := decodeRequestPayload[UpdateTokenRequestPayload](request)
	if err != nil {
		return nil, err
	}
	return h.execute(request, &services.UpdateTokenConfigCommand{
		Sender: payload.Sender, Denom: chi.URLParam(request, "denom"), Config: payload.Config,
	})
}

// FailStake godoc
// @Summary Force a stuck stake to failed
// @Description Refunds the principal of a stake still waiting for execution.
// @Accept json
// @Produce json
// @Param payload body FailStakeRequestPayload true "Stake"
// @Success 200 {object} PublicResponse[ExecuteResponse] "Emitted events"
// @Failure 400 {object} types.Error "Stake is not waiting for execution"
// @Router /v1/admin/stakes/fail [post]
func (h *Handler) FailStake(request *http.Request) (*Result, *types.Error) {
	payload, err := decodeRequestPayload[FailStakeRequestPayload](request)
	if err != nil {
		return nil, err
	}
	return h.execute(request, &services.FailStakeCommand{
		Sender: payload.Sender, Denom: payload.Denom, StakeID: payload.StakeID,
	})
}

// FailUnstake godoc
// @Summary Force a stuck unstake to failed
// @Description Returns the shares of an unstake still waiting for registration.
// @Accept json
// @Produce json
// @Param payload body FailUnstakeRequestPayload true "Unstake"
// @Success 200 {object} PublicResponse[ExecuteResponse] "Emitted events"
// @Failure 400 {object} types.Error "Unstake is not waiting for registration"
// @Router /v1/admin/unstakes/fail [post]
func (h *Handler) FailUnstake(request *http.Request) (*Result, *types.Error) {
	payload, err := decodeRequestPayload[FailUnstakeRequestPayload](request)
	if err != nil {
		return nil, err
	}
	return h.execute(request, &services.FailUnstakeCommand{
		Sender: payload.Sender, Denom: payload.Denom, UnstakeID: payload.UnstakeID,
	})
}

// MintShares godoc
// @Summary Mint share tokens
// @Description Mints shares outside the stake flow while minting is still allowed.
// @Accept json
// @Produce json
// @Param payload body MintSharesRequestPayload true "Mint"
// @Success 200 {object} PublicResponse[ExecuteResponse] "Emitted events"
// @Failure 403 {object} types.Error "Minting is disallowed"
// @Router /v1/admin/mint [post]
func (h *Handler) MintShares(request *http.Request) (*Result, *types.Error) {
	payload, err := decodeRequestPayload[MintSharesRequestPayload](request)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmountField("amount", payload.Amount)
	if err != nil {
		return nil, err
	}
	return h.execute(request, &services.MintSharesCommand{
		Sender: payload.Sender, Recipient: payload.Recipient, LptAddress: payload.LptAddress, Amount: amount,
	})
}

// DisallowMint godoc
// @Summary Permanently disable admin minting
// @Accept json
// @Produce json
// @Param payload body SenderRequestPayload true "Caller"
// @Success 200 {object} PublicResponse[ExecuteResponse] "Emitted events"
// @Router /v1/admin/disallow-mint [post]
func (h *Handler) DisallowMint(request *http.Request) (*Result, *types.Error) {
	payload, err := decodeRequestPayload[SenderRequestPayload](request)
	if err != nil {
		return nil, err
	}
	return h.execute(request, &services.DisallowMintCommand{Sender: payload.Sender})
}

// UpdateContractConfig godoc
// @Summary Replace the trusted identities
// @Accept json
// @Produce json
// @Param payload body UpdateContractConfigRequestPayload true "Contract config"
// @Success 200 {object} PublicResponse[ExecuteResponse] "Emitted events"
// @Router /v1/admin/config [put]
func (h *Handler) UpdateContractConfig(request *http.Request) (*Result, *types.Error) {
	payload, err := decodeRequestPayload[UpdateContractConfigRequestPayload](request)
	if err != nil {
		return nil, err
	}
	return h.execute(request, &services.UpdateContractConfigCommand{Sender: payload.Sender, Config: payload.Config})
}

// UpdateBridgeConfig godoc
// @Summary Replace the bridge settings
// @Accept json
// @Produce json
// @Param payload body UpdateBridgeConfigRequestPayload true "Bridge config"
// @Success 200 {object} PublicResponse[ExecuteResponse] "Emitted events"
// @Router /v1/admin/bridge-config [put]
func (h *Handler) UpdateBridgeConfig(request *http.Request) (*Result, *types.Error) {
	payload, err := decodeRequestPayload[UpdateBridgeConfigRequestPayload](request)
	if err != nil {
		return nil, err
	}
	return h.execute(request, &services.UpdateBridgeConfigCommand{Sender: payload.Sender, Config: payload.Config})
}
