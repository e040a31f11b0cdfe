package handlers

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/yieldward/yield-ward-service/internal/types"
)

// GetStats godoc
// @Summary Get per-token accounting
// @Description Fetches the stake statistics of every token: principal in custody, shares minted and the reinit state.
// @Produce json
// @Success 200 {object} PublicResponse[[]types.StakeStatsEntry] "Stats per token"
// @Router /v1/stats [get]
func (h *Handler) GetStats(request *http.Request) (*Result, *types.Error) {
	stats, err := h.services.GetAllStats(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(stats), nil
}

// GetStakeParams godoc
// @Summary Get the stake queue of a token
// @Produce json
// @Param denom path string true "Token denom"
// @Success 200 {object} PublicResponse[services.QueueParamsPublic] "Queue counters"
// @Failure 404 {object} types.Error "Unknown token"
// @Router /v1/tokens/{denom}/stake-params [get]
func (h *Handler) GetStakeParams(request *http.Request) (*Result, *types.Error) {
	return h.queueParams(request, types.StakeQueue)
}

// GetUnstakeParams godoc
// @Summary Get the unstake queue of a token
// @Produce json
// @Param denom path string true "Token denom"
// @Success 200 {object} PublicResponse[services.QueueParamsPublic] "Queue counters"
// @Failure 404 {object} types.Error "Unknown token"
// @Router /v1/tokens/{denom}/unstake-params [get]
func (h *Handler) GetUnstakeParams(request *http.Request) (*Result, *types.Error) {
	return h.queueParams(request, types.UnstakeQueue)
}

func (h *Handler) queueParams(request *http.Request, kind types.QueueKind) (*Result, *types.Error) {
	params, err := h.services.GetQueueParams(request.Context(), kind, chi.URLParam(request, "denom"))
	if err != nil {
		return nil, err
	}
	return NewResult(params), nil
}

// GetStakeItem godoc
// @Summary Get a stake request
// @Produce json
// @Param denom path string true "Token denom"
// @Param id path int true "Stake id"
// @Success 200 {object} PublicResponse[services.StakeItemPublic] "Stake request"
// @Failure 404 {object} types.Error "Stake not found"
// @Router /v1/tokens/{denom}/stakes/{id} [get]
func (h *Handler) GetStakeItem(request *http.Request) (*Result, *types.Error) {
	id, err := parseIdParam(request, "id")
	if err != nil {
		return nil, err
	}
	item, err := h.services.GetStakeItem(request.Context(), chi.URLParam(request, "denom"), id)
	if err != nil {
		return nil, err
	}
	return NewResult(item), nil
}

// GetUnstakeItem godoc
// @Summary Get an unstake request
// @Produce json
// @Param denom path string true "Token denom"
// @Param id path int true "Unstake id"
// @Success 200 {object} PublicResponse[services.UnstakeItemPublic] "Unstake request"
// @Failure 404 {object} types.Error "Unstake not found"
// @Router /v1/tokens/{denom}/unstakes/{id} [get]
func (h *Handler) GetUnstakeItem(request *http.Request) (*Result, *types.Error) {
	id, err := parseIdParam(request, "id")
	if err != nil {
		return nil, err
	}
	item, err := h.services.GetUnstakeItem(request.Context(), chi.URLParam(request, "denom"), id)
	if err != nil {
		return nil, err
	}
	return NewResult(item), nil
}
