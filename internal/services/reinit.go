package services

import (
	"context"
	"slices"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/yieldward/yield-ward-service/internal/codec"
	"github.com/yieldward/yield-ward-service/internal/gmp"
	"github.com/yieldward/yield-ward-service/internal/state"
	"github.com/yieldward/yield-ward-service/internal/types"
	"github.com/yieldward/yield-ward-service/internal/utils"
)

// RequestReinitCommand asks the remote yield contract to settle registered
// unstakes. Funds are optional and travel with the message.
type RequestReinitCommand struct {
	Sender string
	Denom  string
	Funds  types.Coins
}

func (*RequestReinitCommand) Type() CommandType { return CmdRequestReinit }

func (s *Services) handleRequestReinit(ctx context.Context, tx *state.Tx, fx *effects, cmd Command) *types.Error {
	c := cmd.(*RequestReinitCommand)
	if e := requireAdmin(tx, c.Sender); e != nil {
		return e
	}
	token, e := loadToken(tx, c.Denom)
	if e != nil {
		return e
	}
	funds, e := c.Funds.Carried()
	if e != nil {
		return e
	}
	bridge, err := tx.BridgeConfig()
	if err != nil {
		return types.NewInternalServiceError(err)
	}

	payload := codec.EncodeReinitRequest()
	fx.send(gmp.NewEnvelope(bridge, token, payload, funds, types.ActionReinit, 0))
	fx.emit(types.NewEvent("reinit").
		Add("token_denom", c.Denom).
		Add("dest_chain", token.Chain).
		Add("payload", hexutil.Encode(payload)))
	return nil
}

// reconcileReinit handles a bare reinit response, which must carry the
// settlement as exactly one non-zero coin of the token.
func reconcileReinit(
	tx *state.Tx, fx *effects, denom string, token *types.TokenConfig, body []byte, carried *types.Coin,
) *types.Error {
	if carried == nil {
		return types.NewInvalidFundsError("reinit response must carry exactly one non-zero coin")
	}
	if carried.Denom != denom {
		return types.NewInvalidTokenError(carried.Denom, denom)
	}
	resp, ok := codec.DecodeReinitResponse(body)
	if !ok {
		return types.NewInvalidPayloadError()
	}

	stats, e := loadStats(tx, denom)
	if e != nil {
		return e
	}
	if e := settleReinit(tx, fx, denom, token, carried.Amount, resp.ReinitUnstakeID, stats); e != nil {
		return e
	}
	return saveStats(tx, denom, stats)
}

// settleReinit pays amount to the owner of registered unstake id, burns the
// shares held in custody and frees the unstake's queue slot. stats is
// updated in place and saved by the caller.
func settleReinit(
	tx *state.Tx, fx *effects, denom string, token *types.TokenConfig,
	amount *uint256.Int, id uint64, stats *types.StakeStats,
) *types.Error {
	item, e := loadUnstakeItem(tx, denom, id)
	if e != nil {
		return e
	}
	if !slices.Contains(utils.QualifiedStagesToReinit(), item.ActionStage) {
		return types.NewUnstakeInvalidStageError(token.DepositTokenSymbol, id)
	}
	if amount == nil || amount.IsZero() {
		return types.NewInvalidFundsError("reinit settlement carries no funds")
	}

	total := amount
	if item.TokenAmount != nil {
		if total, e = types.CheckedAdd(item.TokenAmount, amount); e != nil {
			return e
		}
	}
	item.TokenAmount = total
	item.ActionStage = types.UnstakeExecuted
	if err := tx.SetUnstakeItem(denom, id, item); err != nil {
		return types.NewInternalServiceError(err)
	}
	if e := releaseSlot(tx, types.UnstakeQueue, denom); e != nil {
		return e
	}
	if stats.PendingUnstakeLpTokenAmount, e = types.CheckedSub(stats.PendingUnstakeLpTokenAmount, item.LpTokenAmount); e != nil {
		return e
	}

	fx.ledger(types.LedgerInstruction{
		Op: types.LedgerTransfer, Token: denom, Recipient: item.User, Amount: amount,
	})
	fx.ledger(types.LedgerInstruction{
		Op: types.LedgerBurn, Token: token.LptAddress, Amount: item.LpTokenAmount,
	})
	fx.emit(types.NewEvent("unstake_finished").
		AddUint("unstake_id", id).
		Add("token", denom).
		AddAmount("lp_amount", item.LpTokenAmount).
		AddAmount("token_amount", amount).
		AddAmount("total_token_amount", total))
	return nil
}
