package services

import (
	"errors"

	"github.com/yieldward/yield-ward-service/internal/state"
	"github.com/yieldward/yield-ward-service/internal/types"
)

func loadStats(tx *state.Tx, denom string) (*types.StakeStats, *types.Error) {
	stats, err := tx.Stats(denom)
	if errors.Is(err, state.ErrNotFound) {
		return nil, types.NewUnknownTokenError(denom)
	}
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	return stats, nil
}

func saveStats(tx *state.Tx, denom string, stats *types.StakeStats) *types.Error {
	if err := tx.SetStats(denom, stats); err != nil {
		return types.NewInternalServiceError(err)
	}
	return nil
}

func loadParams(tx *state.Tx, kind types.QueueKind, denom string) (*types.QueueParams, *types.Error) {
	params, err := tx.QueueParams(kind, denom)
	if errors.Is(err, state.ErrNotFound) {
		return nil, types.NewUnknownTokenError(denom)
	}
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	return params, nil
}

// allocateID hands out the next id of a queue and counts it as pending.
func allocateID(tx *state.Tx, kind types.QueueKind, denom string) (uint64, *types.Error) {
	params, e := loadParams(tx, kind, denom)
	if e != nil {
		return 0, e
	}
	id := params.NextID
	params.NextID++
	params.PendingCount++
	if err := tx.SetQueueParams(kind, denom, params); err != nil {
		return 0, types.NewInternalServiceError(err)
	}
	return id, nil
}

// releaseSlot frees one pending slot of a queue. Freeing a slot that is not
// held is an invariant violation.
func releaseSlot(tx *state.Tx, kind types.QueueKind, denom string) *types.Error {
	params, e := loadParams(tx, kind, denom)
	if e != nil {
		return e
	}
	pending, e := types.CheckedDecrement(params.PendingCount)
	if e != nil {
		return e
	}
	params.PendingCount = pending
	if err := tx.SetQueueParams(kind, denom, params); err != nil {
		return types.NewInternalServiceError(err)
	}
	return nil
}

func loadStakeItem(tx *state.Tx, denom string, id uint64) (*types.StakeItem, *types.Error) {
	item, err := tx.StakeItem(denom, id)
	if errors.Is(err, state.ErrNotFound) {
		return nil, types.NewStakeNotFoundError(denom, id)
	}
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	return item, nil
}

func loadUnstakeItem(tx *state.Tx, denom string, id uint64) (*types.UnstakeItem, *types.Error) {
	item, err := tx.UnstakeItem(denom, id)
	if errors.Is(err, state.ErrNotFound) {
		return nil, types.NewUnstakeNotFoundError(denom, id)
	}
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	return item, nil
}
