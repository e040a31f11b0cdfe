package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/holiman/uint256"

	"github.com/yieldward/yield-ward-service/internal/config"
	"github.com/yieldward/yield-ward-service/internal/services"
	"github.com/yieldward/yield-ward-service/internal/types"
)

type Handler struct {
	config   *config.Config
	services *services.Services
}

type paginationResponse struct {
	NextKey string `json:"next_key"`
}

type PublicResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination *paginationResponse `json:"pagination,omitempty"`
}

type Result struct {
	Data   interface{}
	Status int
}

// NewResultWithPagination returns a successful result with the key of the
// next page. An empty key means the last page was reached.
func NewResultWithPagination[T any](data T, pageToken string) *Result {
	res := &PublicResponse[T]{Data: data, Pagination: &paginationResponse{NextKey: pageToken}}
	return &Result{Data: res, Status: http.StatusOK}
}

func NewResult[T any](data T) *Result {
	res := &PublicResponse[T]{Data: data}
	return &Result{Data: res, Status: http.StatusOK}
}

func New(
	ctx context.Context, cfg *config.Config, services *services.Services,
) (*Handler, error) {
	return &Handler{
		config:   cfg,
		services: services,
	}, nil
}

func decodeRequestPayload[T any](request *http.Request) (*T, *types.Error) {
	payload := new(T)
	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid request payload")
	}
	return payload, nil
}

func parsePaginationQuery(r *http.Request) string {
	return r.URL.Query().Get("pagination_key")
}

func parseRequiredQuery(r *http.Request, name string) (string, *types.Error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return "", types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, name+" is required")
	}
	return value, nil
}

func parseIdParam(r *http.Request, name string) (uint64, *types.Error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid "+name)
	}
	return id, nil
}

func parseAmountField(name, value string) (*uint256.Int, *types.Error) {
	amount, err := types.ParseAmount(value)
	if err != nil {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid "+name)
	}
	return amount, nil
}

// decodeCoins converts the funds of a request into engine coins.
func decodeCoins(funds []CoinPayload) (types.Coins, *types.Error) {
	coins := make(types.Coins, 0, len(funds))
	for _, f := range funds {
		amount, err := parseAmountField("funds amount", f.Amount)
		if err != nil {
			return nil, err
		}
		coins = append(coins, types.Coin{Denom: f.Denom, Amount: amount})
	}
	return coins, nil
}

type CoinPayload struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// ExecuteResponse lists the events a committed command emitted.
type ExecuteResponse struct {
	Events []*types.Event `json:"events"`
}

func (h *Handler) execute(request *http.Request, cmd services.Command) (*Result, *types.Error) {
	result, err := h.services.Execute(request.Context(), cmd)
	if err != nil {
		return nil, err
	}
	events := result.Events
	if events == nil {
		events = []*types.Event{}
	}
	return NewResult(ExecuteResponse{Events: events}), nil
}
