package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yieldward/yield-ward-service/internal/state"
	"github.com/yieldward/yield-ward-service/internal/types"
	"github.com/yieldward/yield-ward-service/internal/utils"
)

// normalizeTokenConfig validates a token config and lowercases its remote
// addresses in place.
func (s *Services) normalizeTokenConfig(cfg *types.TokenConfig) *types.Error {
	if cfg.Chain == "" {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.ValidationError, "missing chain")
	}
	yieldContract, err := utils.NormalizeRemoteAddress(cfg.EvmYieldContract)
	if err != nil {
		return types.NewError(http.StatusBadRequest, types.ValidationError, err)
	}
	cfg.EvmYieldContract = yieldContract

	if cfg.EvmAddress != "" {
		evmAddress, err := utils.NormalizeRemoteAddress(cfg.EvmAddress)
		if err != nil {
			return types.NewError(http.StatusBadRequest, types.ValidationError, err)
		}
		cfg.EvmAddress = evmAddress
	}

	if err := utils.ValidateHomeAddress(cfg.LptAddress, s.cfg.Server.AddressPrefix); err != nil {
		return types.NewError(http.StatusBadRequest, types.ValidationError, err)
	}
	return nil
}

func indexError(err error, denom string) *types.Error {
	if errors.Is(err, state.ErrIndexConflict) {
		return types.NewErrorWithMsg(
			http.StatusConflict, types.TokenIndexConflict,
			fmt.Sprintf("token %s: source or lp token address already belongs to another token", denom),
		)
	}
	return types.NewInternalServiceError(err)
}

// registerToken adds a token together with its reverse index entries, empty
// queues and zeroed stats.
func (s *Services) registerToken(tx *state.Tx, denom string, cfg *types.TokenConfig) *types.Error {
	if denom == "" {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.ValidationError, "missing token denom")
	}
	if tx.HasToken(denom) {
		return types.NewErrorWithMsg(
			http.StatusConflict, types.TokenAlreadyExists, fmt.Sprintf("token already exists: %s", denom),
		)
	}
	if e := s.normalizeTokenConfig(cfg); e != nil {
		return e
	}

	if err := state.TokenBySource.Insert(tx, state.SourceKey(cfg.Chain, cfg.EvmYieldContract), denom); err != nil {
		return indexError(err, denom)
	}
	if err := state.TokenByLpt.Insert(tx, state.LptKey(cfg.LptAddress), denom); err != nil {
		return indexError(err, denom)
	}

	params := types.NewQueueParams()
	if err := tx.SetQueueParams(types.StakeQueue, denom, &params); err != nil {
		return types.NewInternalServiceError(err)
	}
	if err := tx.SetQueueParams(types.UnstakeQueue, denom, &params); err != nil {
		return types.NewInternalServiceError(err)
	}
	if err := tx.SetStats(denom, types.NewStakeStats()); err != nil {
		return types.NewInternalServiceError(err)
	}
	if err := tx.SetToken(denom, cfg); err != nil {
		return types.NewInternalServiceError(err)
	}
	return nil
}

// updateToken replaces a token config and moves its reverse index entries
// when the remote source or the lp token address changed.
func (s *Services) updateToken(tx *state.Tx, denom string, cfg *types.TokenConfig) *types.Error {
	old, e := loadToken(tx, denom)
	if e != nil {
		return e
	}
	if e := s.normalizeTokenConfig(cfg); e != nil {
		return e
	}

	err := state.TokenBySource.Update(
		tx,
		state.SourceKey(old.Chain, old.EvmYieldContract),
		state.SourceKey(cfg.Chain, cfg.EvmYieldContract),
		denom,
	)
	if err != nil {
		return indexError(err, denom)
	}
	err = state.TokenByLpt.Update(tx, state.LptKey(old.LptAddress), state.LptKey(cfg.LptAddress), denom)
	if err != nil {
		return indexError(err, denom)
	}

	if err := tx.SetToken(denom, cfg); err != nil {
		return types.NewInternalServiceError(err)
	}
	return nil
}

func loadToken(tx *state.Tx, denom string) (*types.TokenConfig, *types.Error) {
	cfg, err := tx.Token(denom)
	if errors.Is(err, state.ErrNotFound) {
		return nil, types.NewUnknownTokenError(denom)
	}
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	return cfg, nil
}

// tokenBySource resolves the token whose remote yield contract sent a
// response. Addresses compare case-insensitively.
func tokenBySource(tx *state.Tx, chain, address string) (string, *types.TokenConfig, *types.Error) {
	denom, err := state.TokenBySource.Lookup(tx, state.SourceKey(chain, strings.ToLower(address)))
	if errors.Is(err, state.ErrNotFound) {
		return "", nil, types.NewUnknownTokenBySourceError(chain, address)
	}
	if err != nil {
		return "", nil, types.NewInternalServiceError(err)
	}
	cfg, e := loadToken(tx, denom)
	if e != nil {
		return "", nil, e
	}
	return denom, cfg, nil
}

func tokenByLpt(tx *state.Tx, address string) (string, *types.TokenConfig, *types.Error) {
	denom, err := state.TokenByLpt.Lookup(tx, state.LptKey(address))
	if errors.Is(err, state.ErrNotFound) {
		return "", nil, types.NewUnknownLpTokenError(address)
	}
	if err != nil {
		return "", nil, types.NewInternalServiceError(err)
	}
	cfg, e := loadToken(tx, denom)
	if e != nil {
		return "", nil, e
	}
	return denom, cfg, nil
}
