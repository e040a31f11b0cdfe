package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/yieldward/yield-ward-service/internal/db"
	"github.com/yieldward/yield-ward-service/internal/db/model"
	"github.com/yieldward/yield-ward-service/internal/state"
	"github.com/yieldward/yield-ward-service/internal/types"
)

// ConfigPublic is the combined read model of the trusted identities and the
// bridge settings.
type ConfigPublic struct {
	Contract types.ContractConfig `json:"contract"`
	Bridge   types.BridgeConfig   `json:"bridge"`
}

type QueueParamsPublic struct {
	Denom        string `json:"denom"`
	PendingCount uint64 `json:"pending_count"`
	NextID       uint64 `json:"next_id"`
}

type StakeItemPublic struct {
	Denom         string `json:"denom"`
	ID            uint64 `json:"id"`
	User          string `json:"user"`
	TokenAmount   string `json:"token_amount"`
	LpTokenAmount string `json:"lp_token_amount,omitempty"`
	ActionStage   string `json:"action_stage"`
}

type UnstakeItemPublic struct {
	Denom         string `json:"denom"`
	ID            uint64 `json:"id"`
	User          string `json:"user"`
	LpTokenAmount string `json:"lp_token_amount"`
	TokenAmount   string `json:"token_amount,omitempty"`
	ActionStage   string `json:"action_stage"`
}

type EventPublic struct {
	Seq        int64             `json:"seq"`
	Type       string            `json:"type"`
	Attributes []types.Attribute `json:"attributes"`
	ArchivedAt int64             `json:"archived_at"`
}

func amountString(v *uint256.Int) string {
	if v == nil {
		return ""
	}
	return v.Dec()
}

// view runs a read-only transaction and maps storage failures to internal
// errors while passing engine errors through.
func (s *Services) view(ctx context.Context, fn func(tx *state.Tx) *types.Error) *types.Error {
	err := s.Store.View(ctx, func(tx *state.Tx) error {
		if e := fn(tx); e != nil {
			return e
		}
		return nil
	})
	if err == nil {
		return nil
	}
	var engineErr *types.Error
	if errors.As(err, &engineErr) {
		return engineErr
	}
	log.Ctx(ctx).Error().Err(err).Msg("error while reading engine state")
	return types.NewInternalServiceError(err)
}

func (s *Services) GetConfig(ctx context.Context) (*ConfigPublic, *types.Error) {
	var out ConfigPublic
	e := s.view(ctx, func(tx *state.Tx) *types.Error {
		contract, err := tx.ContractConfig()
		if err != nil {
			return types.NewInternalServiceError(err)
		}
		bridge, err := tx.BridgeConfig()
		if err != nil {
			return types.NewInternalServiceError(err)
		}
		out.Contract = *contract
		out.Bridge = *bridge
		return nil
	})
	if e != nil {
		return nil, e
	}
	return &out, nil
}

func (s *Services) GetTokens(ctx context.Context) ([]types.TokenEntry, *types.Error) {
	var tokens []types.TokenEntry
	e := s.view(ctx, func(tx *state.Tx) *types.Error {
		var err error
		if tokens, err = tx.Tokens(); err != nil {
			return types.NewInternalServiceError(err)
		}
		return nil
	})
	if tokens == nil {
		tokens = []types.TokenEntry{}
	}
	return tokens, e
}

func (s *Services) GetTokenBySource(ctx context.Context, chain, address string) (*types.TokenEntry, *types.Error) {
	var entry *types.TokenEntry
	e := s.view(ctx, func(tx *state.Tx) *types.Error {
		denom, cfg, e := tokenBySource(tx, chain, address)
		if e != nil {
			return e
		}
		entry = &types.TokenEntry{Denom: denom, Config: *cfg}
		return nil
	})
	return entry, e
}

func (s *Services) GetTokenByLpt(ctx context.Context, address string) (*types.TokenEntry, *types.Error) {
	var entry *types.TokenEntry
	e := s.view(ctx, func(tx *state.Tx) *types.Error {
		denom, cfg, e := tokenByLpt(tx, address)
		if e != nil {
			return e
		}
		entry = &types.TokenEntry{Denom: denom, Config: *cfg}
		return nil
	})
	return entry, e
}

func (s *Services) GetAllStats(ctx context.Context) ([]types.StakeStatsEntry, *types.Error) {
	var stats []types.StakeStatsEntry
	e := s.view(ctx, func(tx *state.Tx) *types.Error {
		var err error
		if stats, err = tx.AllStats(); err != nil {
			return types.NewInternalServiceError(err)
		}
		return nil
	})
	if stats == nil {
		stats = []types.StakeStatsEntry{}
	}
	return stats, e
}

func (s *Services) GetQueueParams(ctx context.Context, kind types.QueueKind, denom string) (*QueueParamsPublic, *types.Error) {
	var out *QueueParamsPublic
	e := s.view(ctx, func(tx *state.Tx) *types.Error {
		params, e := loadParams(tx, kind, denom)
		if e != nil {
			return e
		}
		out = &QueueParamsPublic{Denom: denom, PendingCount: params.PendingCount, NextID: params.NextID}
		return nil
	})
	return out, e
}

func (s *Services) GetStakeItem(ctx context.Context, denom string, id uint64) (*StakeItemPublic, *types.Error) {
	var out *StakeItemPublic
	e := s.view(ctx, func(tx *state.Tx) *types.Error {
		item, e := loadStakeItem(tx, denom, id)
		if e != nil {
			return e
		}
		out = &StakeItemPublic{
			Denom:         denom,
			ID:            id,
			User:          item.User,
			TokenAmount:   amountString(item.TokenAmount),
			LpTokenAmount: amountString(item.LpTokenAmount),
			ActionStage:   item.ActionStage.ToString(),
		}
		return nil
	})
	return out, e
}

func (s *Services) GetUnstakeItem(ctx context.Context, denom string, id uint64) (*UnstakeItemPublic, *types.Error) {
	var out *UnstakeItemPublic
	e := s.view(ctx, func(tx *state.Tx) *types.Error {
		item, e := loadUnstakeItem(tx, denom, id)
		if e != nil {
			return e
		}
		out = &UnstakeItemPublic{
			Denom:         denom,
			ID:            id,
			User:          item.User,
			LpTokenAmount: amountString(item.LpTokenAmount),
			TokenAmount:   amountString(item.TokenAmount),
			ActionStage:   item.ActionStage.ToString(),
		}
		return nil
	})
	return out, e
}

// GetEvents pages through the archived events, newest first.
func (s *Services) GetEvents(ctx context.Context, eventType, paginationKey string) ([]EventPublic, string, *types.Error) {
	result, err := s.DbClient.FindEvents(ctx, eventType, paginationKey)
	if err != nil {
		if db.IsInvalidPaginationTokenError(err) {
			log.Ctx(ctx).Warn().Err(err).Msg("Invalid pagination token when fetching events")
			return nil, "", types.NewError(http.StatusBadRequest, types.BadRequest, err)
		}
		log.Ctx(ctx).Error().Err(err).Msg("Failed to find events")
		return nil, "", types.NewInternalServiceError(err)
	}
	events := make([]EventPublic, 0, len(result.Data))
	for _, d := range result.Data {
		events = append(events, toEventPublic(d))
	}
	return events, result.PaginationToken, nil
}

func toEventPublic(d model.EventDocument) EventPublic {
	return EventPublic{Seq: d.Seq, Type: d.Type, Attributes: d.Attributes, ArchivedAt: d.ArchivedAt}
}
