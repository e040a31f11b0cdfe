package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/yieldward/yield-ward-service/internal/codec"
	"github.com/yieldward/yield-ward-service/internal/gmp"
	"github.com/yieldward/yield-ward-service/internal/state"
	"github.com/yieldward/yield-ward-service/internal/types"
)

// StakeCommand deposits Funds, a single coin whose denom names the token.
type StakeCommand struct {
	Sender string
	Funds  types.Coins
}

func (*StakeCommand) Type() CommandType { return CmdStake }

func (s *Services) handleStake(ctx context.Context, tx *state.Tx, fx *effects, cmd Command) *types.Error {
	c := cmd.(*StakeCommand)
	if len(c.Funds) != 1 {
		return types.NewInvalidFundsError("stake requires exactly one coin")
	}
	coin := c.Funds[0]
	if coin.IsZero() {
		return types.NewZeroAmountError()
	}
	if !types.IsU128(coin.Amount) {
		return types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError, fmt.Sprintf("stake amount exceeds %d bits", types.MaxAmountBits),
		)
	}

	token, e := loadToken(tx, coin.Denom)
	if e != nil {
		return e
	}
	if !token.IsStakeEnabled {
		return types.NewErrorWithMsg(
			http.StatusForbidden, types.StakeDisabled, fmt.Sprintf("stake is disabled for %s", token.LptSymbol),
		)
	}
	bridge, err := tx.BridgeConfig()
	if err != nil {
		return types.NewInternalServiceError(err)
	}

	stakeID, e := allocateID(tx, types.StakeQueue, coin.Denom)
	if e != nil {
		return e
	}
	item := &types.StakeItem{
		User:        c.Sender,
		TokenAmount: coin.Amount,
		ActionStage: types.StakeWaitingExecution,
	}
	if err := tx.SetStakeItem(coin.Denom, stakeID, item); err != nil {
		return types.NewInternalServiceError(err)
	}

	stats, e := loadStats(tx, coin.Denom)
	if e != nil {
		return e
	}
	if stats.PendingStake, e = types.CheckedAdd(stats.PendingStake, coin.Amount); e != nil {
		return e
	}
	if e := saveStats(tx, coin.Denom, stats); e != nil {
		return e
	}

	payload := codec.EncodeStakeRequest(codec.StakeRequest{StakeID: stakeID})
	fx.send(gmp.NewEnvelope(bridge, token, payload, &coin, types.ActionStake, stakeID))
	fx.emit(types.NewEvent("stake").
		AddUint("stake_id", stakeID).
		Add("sender", c.Sender).
		Add("token_symbol", token.DepositTokenSymbol).
		Add("evm_yield_contract", token.EvmYieldContract).
		Add("dest_chain", token.Chain).
		AddAmount("token_amount", coin.Amount).
		Add("payload", hexutil.Encode(payload)))
	return nil
}
