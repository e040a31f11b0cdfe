package services

import (
	"context"
	"net/http"
	"slices"

	"github.com/yieldward/yield-ward-service/internal/codec"
	"github.com/yieldward/yield-ward-service/internal/state"
	"github.com/yieldward/yield-ward-service/internal/types"
	"github.com/yieldward/yield-ward-service/internal/utils"
)

// HandleResponseCommand delivers a bridge response. Payload is the outer
// envelope: the routing tag followed by the fixed-layout response body.
type HandleResponseCommand struct {
	Sender        string
	SourceChain   string
	SourceAddress string
	Payload       []byte
	Funds         types.Coins
}

func (*HandleResponseCommand) Type() CommandType { return CmdHandleResponse }

func (s *Services) handleResponse(ctx context.Context, tx *state.Tx, fx *effects, cmd Command) *types.Error {
	c := cmd.(*HandleResponseCommand)
	if e := requireBridge(tx, c.Sender); e != nil {
		return e
	}

	tag, body, ok := codec.SplitEnvelope(c.Payload)
	if !ok {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.InvalidActionType, "empty response payload")
	}
	action, err := types.ActionTypeFromByte(tag)
	if err != nil {
		return types.NewError(http.StatusBadRequest, types.InvalidActionType, err)
	}
	carried, e := c.Funds.Carried()
	if e != nil {
		return e
	}
	denom, token, e := tokenBySource(tx, c.SourceChain, c.SourceAddress)
	if e != nil {
		return e
	}

	switch action {
	case types.ActionStake:
		return reconcileStake(tx, fx, denom, token, body, carried)
	case types.ActionUnstake:
		return reconcileUnstake(tx, fx, denom, token, body, carried)
	default:
		return reconcileReinit(tx, fx, denom, token, body, carried)
	}
}

func validateStakeResponse(resp codec.StakeResponse, denom string, carried *types.Coin) *types.Error {
	if carried == nil {
		if resp.ReinitUnstakeID != 0 {
			return types.NewInvalidFundsError("stake response with a reinit id carries no funds")
		}
		if resp.Status == types.StatusFail {
			return types.NewInvalidFundsError("failed stake response must return the principal")
		}
		return nil
	}
	if resp.ReinitUnstakeID == 0 && resp.Status == types.StatusSuccess {
		return types.NewInvalidFundsError("successful stake response without a reinit id must not carry funds")
	}
	if carried.Denom != denom {
		return types.NewInvalidTokenError(carried.Denom, denom)
	}
	return nil
}

func reconcileStake(
	tx *state.Tx, fx *effects, denom string, token *types.TokenConfig, body []byte, carried *types.Coin,
) *types.Error {
	resp, ok := codec.DecodeStakeResponse(body)
	if !ok {
		return types.NewInvalidPayloadError()
	}
	if e := validateStakeResponse(resp, denom, carried); e != nil {
		return e
	}

	item, e := loadStakeItem(tx, denom, resp.StakeID)
	if e != nil {
		return e
	}
	if !slices.Contains(utils.QualifiedStagesToSettleStake(), item.ActionStage) {
		return types.NewStakeInvalidStageError(token.DepositTokenSymbol, resp.StakeID)
	}
	stats, e := loadStats(tx, denom)
	if e != nil {
		return e
	}
	if stats.PendingStake, e = types.CheckedSub(stats.PendingStake, item.TokenAmount); e != nil {
		return e
	}

	// Funds left for the reinit settlement once this stake took its share.
	reinitAmount := types.ZeroAmount256()
	if carried != nil {
		reinitAmount = carried.Amount
	}

	if resp.Status == types.StatusSuccess {
		if stats.LpTokenAmount, e = types.CheckedAdd(stats.LpTokenAmount, resp.LpTokenAmount); e != nil {
			return e
		}
		item.ActionStage = types.StakeExecuted
		item.LpTokenAmount = resp.LpTokenAmount
		fx.ledger(types.LedgerInstruction{
			Op: types.LedgerMint, Token: token.LptAddress, Recipient: item.User, Amount: resp.LpTokenAmount,
		})
		fx.emit(types.NewEvent("stake_success").
			AddUint("stake_id", resp.StakeID).
			AddAmount("lp_amount", resp.LpTokenAmount).
			AddAmount("token_amount", item.TokenAmount))
	} else {
		if reinitAmount, e = types.CheckedSub(reinitAmount, item.TokenAmount); e != nil {
			return e
		}
		if resp.ReinitUnstakeID == 0 && !reinitAmount.IsZero() {
			return types.NewInvalidFundsError("failed stake response returns more than the principal")
		}
		item.ActionStage = types.StakeFailed
		fx.ledger(types.LedgerInstruction{
			Op: types.LedgerTransfer, Token: denom, Recipient: item.User, Amount: item.TokenAmount,
		})
		fx.emit(types.NewEvent("stake_failed").
			AddUint("stake_id", resp.StakeID).
			AddAmount("token_amount", item.TokenAmount))
	}

	if err := tx.SetStakeItem(denom, resp.StakeID, item); err != nil {
		return types.NewInternalServiceError(err)
	}
	if e := releaseSlot(tx, types.StakeQueue, denom); e != nil {
		return e
	}

	if resp.ReinitUnstakeID != 0 {
		if e := settleReinit(tx, fx, denom, token, reinitAmount, resp.ReinitUnstakeID, stats); e != nil {
			return e
		}
	}
	return saveStats(tx, denom, stats)
}

func validateUnstakeResponse(resp codec.UnstakeResponse, denom string, carried *types.Coin) *types.Error {
	if carried == nil {
		if resp.ReinitUnstakeID != 0 {
			return types.NewInvalidFundsError("unstake response with a reinit id carries no funds")
		}
		return nil
	}
	if resp.ReinitUnstakeID == 0 {
		return types.NewInvalidFundsError("unstake response without a reinit id must not carry funds")
	}
	if carried.Denom != denom {
		return types.NewInvalidTokenError(carried.Denom, denom)
	}
	return nil
}

func reconcileUnstake(
	tx *state.Tx, fx *effects, denom string, token *types.TokenConfig, body []byte, carried *types.Coin,
) *types.Error {
	resp, ok := codec.DecodeUnstakeResponse(body)
	if !ok {
		return types.NewInvalidPayloadError()
	}
	if e := validateUnstakeResponse(resp, denom, carried); e != nil {
		return e
	}

	item, e := loadUnstakeItem(tx, denom, resp.UnstakeID)
	if e != nil {
		return e
	}
	if !slices.Contains(utils.QualifiedStagesToRegister(), item.ActionStage) {
		return types.NewUnstakeInvalidStageError(token.DepositTokenSymbol, resp.UnstakeID)
	}
	stats, e := loadStats(tx, denom)
	if e != nil {
		return e
	}

	if resp.Status == types.StatusSuccess {
		if stats.LpTokenAmount, e = types.CheckedSub(stats.LpTokenAmount, item.LpTokenAmount); e != nil {
			return e
		}
		item.ActionStage = types.UnstakeRegistered
		fx.emit(types.NewEvent("unstake_registered").
			AddUint("unstake_id", resp.UnstakeID).
			AddAmount("lp_amount", item.LpTokenAmount))
	} else {
		if stats.PendingUnstakeLpTokenAmount, e = types.CheckedSub(stats.PendingUnstakeLpTokenAmount, item.LpTokenAmount); e != nil {
			return e
		}
		if e := releaseSlot(tx, types.UnstakeQueue, denom); e != nil {
			return e
		}
		// kept as a tombstone so a repeated response fails the stage check
		item.ActionStage = types.UnstakeFailed
		fx.ledger(types.LedgerInstruction{
			Op: types.LedgerTransfer, Token: token.LptAddress, Recipient: item.User, Amount: item.LpTokenAmount,
		})
		fx.emit(types.NewEvent("unstake_failed").
			AddUint("unstake_id", resp.UnstakeID).
			AddAmount("lp_amount", item.LpTokenAmount))
	}

	// saved before the reinit settlement, which may target this same id
	if err := tx.SetUnstakeItem(denom, resp.UnstakeID, item); err != nil {
		return types.NewInternalServiceError(err)
	}

	if resp.ReinitUnstakeID != 0 {
		if e := settleReinit(tx, fx, denom, token, carried.Amount, resp.ReinitUnstakeID, stats); e != nil {
			return e
		}
	}
	return saveStats(tx, denom, stats)
}
