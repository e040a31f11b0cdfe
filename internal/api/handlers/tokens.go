package handlers

import (
	"net/http"

	"github.com/yieldward/yield-ward-service/internal/types"
)

// GetTokens godoc
// @Summary List registered tokens
// @Produce json
// @Success 200 {object} PublicResponse[[]types.TokenEntry] "Registered tokens ordered by denom"
// @Router /v1/tokens [get]
func (h *Handler) GetTokens(request *http.Request) (*Result, *types.Error) {
	tokens, err := h.services.GetTokens(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(tokens), nil
}

// GetTokenBySource godoc
// @Summary Find a token by its remote yield contract
// @Produce json
// @Param chain query string true "Remote chain name"
// @Param address query string true "Remote yield contract address"
// @Success 200 {object} PublicResponse[types.TokenEntry] "Token"
// @Failure 404 {object} types.Error "No token for the source"
// @Router /v1/tokens/by-source [get]
func (h *Handler) GetTokenBySource(request *http.Request) (*Result, *types.Error) {
	chain, err := parseRequiredQuery(request, "chain")
	if err != nil {
		return nil, err
	}
	address, err := parseRequiredQuery(request, "address")
	if err != nil {
		return nil, err
	}
	token, err := h.services.GetTokenBySource(request.Context(), chain, address)
	if err != nil {
		return nil, err
	}
	return NewResult(token), nil
}

// GetTokenByLpt godoc
// @Summary Find a token by its share token address
// @Produce json
// @Param address query string true "Share token address"
// @Success 200 {object} PublicResponse[types.TokenEntry] "Token"
// @Failure 404 {object} types.Error "No token for the share token"
// @Router /v1/tokens/by-lpt [get]
func (h *Handler) GetTokenByLpt(request *http.Request) (*Result, *types.Error) {
	address, err := parseRequiredQuery(request, "address")
	if err != nil {
		return nil, err
	}
	token, err := h.services.GetTokenByLpt(request.Context(), address)
	if err != nil {
		return nil, err
	}
	return NewResult(token), nil
}

// GetConfig godoc
// @Summary Get the trusted identities and bridge settings
// @Produce json
// @Success 200 {object} PublicResponse[services.ConfigPublic] "Configuration"
// @Router /v1/config [get]
func (h *Handler) GetConfig(request *http.Request) (*Result, *types.Error) {
	cfg, err := h.services.GetConfig(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(cfg), nil
}
