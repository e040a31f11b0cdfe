package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/yieldward/yield-ward-service/internal/codec"
	"github.com/yieldward/yield-ward-service/internal/gmp"
	"github.com/yieldward/yield-ward-service/internal/state"
	"github.com/yieldward/yield-ward-service/internal/types"
)

// UnstakeCommand withdraws Amount shares of the lp token at LptAddress. The
// shares are already in the service's custody when the command runs. Funds
// is the relay fee and travels with the outbound message.
type UnstakeCommand struct {
	Sender     string
	LptAddress string
	Amount     *uint256.Int
	Funds      types.Coins
}

func (*UnstakeCommand) Type() CommandType { return CmdUnstake }

func (s *Services) handleUnstake(ctx context.Context, tx *state.Tx, fx *effects, cmd Command) *types.Error {
	c := cmd.(*UnstakeCommand)
	if c.Amount == nil || c.Amount.IsZero() {
		return types.NewZeroAmountError()
	}
	if !types.IsU128(c.Amount) {
		return types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError, fmt.Sprintf("unstake amount exceeds %d bits", types.MaxAmountBits),
		)
	}

	denom, token, e := tokenByLpt(tx, c.LptAddress)
	if e != nil {
		return e
	}
	if !token.IsUnstakeEnabled {
		return types.NewErrorWithMsg(
			http.StatusForbidden, types.UnstakeDisabled, fmt.Sprintf("unstake is disabled for %s", token.LptSymbol),
		)
	}
	fee, e := c.Funds.Carried()
	if e != nil {
		return e
	}
	if fee == nil {
		return types.NewInvalidFundsError("unstake requires exactly one non-zero fee coin")
	}
	bridge, err := tx.BridgeConfig()
	if err != nil {
		return types.NewInternalServiceError(err)
	}

	unstakeID, e := allocateID(tx, types.UnstakeQueue, denom)
	if e != nil {
		return e
	}
	item := &types.UnstakeItem{
		User:          c.Sender,
		LpTokenAmount: c.Amount,
		ActionStage:   types.UnstakeWaitingRegistration,
	}
	if err := tx.SetUnstakeItem(denom, unstakeID, item); err != nil {
		return types.NewInternalServiceError(err)
	}

	stats, e := loadStats(tx, denom)
	if e != nil {
		return e
	}
	if stats.PendingUnstakeLpTokenAmount, e = types.CheckedAdd(stats.PendingUnstakeLpTokenAmount, c.Amount); e != nil {
		return e
	}
	if e := saveStats(tx, denom, stats); e != nil {
		return e
	}

	payload, ok := codec.EncodeUnstakeRequest(codec.UnstakeRequest{LpTokenAmount: c.Amount, UnstakeID: unstakeID})
	if !ok {
		return types.NewInvalidPayloadError()
	}
	fx.send(gmp.NewEnvelope(bridge, token, payload, fee, types.ActionUnstake, unstakeID))
	fx.emit(types.NewEvent("unstake").
		AddUint("unstake_id", unstakeID).
		Add("sender", c.Sender).
		Add("chain", token.Chain).
		Add("yield_contract", token.EvmYieldContract).
		AddAmount("lpt_amount", c.Amount).
		Add("payload", hexutil.Encode(payload)))
	return nil
}
