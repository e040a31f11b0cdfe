package services

import (
	"context"
	"net/http"
	"slices"

	"github.com/holiman/uint256"

	"github.com/yieldward/yield-ward-service/internal/state"
	"github.com/yieldward/yield-ward-service/internal/types"
	"github.com/yieldward/yield-ward-service/internal/utils"
)

type AddTokenCommand struct {
	Sender string
	Denom  string
	Config types.TokenConfig
}

func (*AddTokenCommand) Type() CommandType { return CmdAddToken }

type UpdateTokenConfigCommand struct {
	Sender string
	Denom  string
	Config types.TokenConfig
}

func (*UpdateTokenConfigCommand) Type() CommandType { return CmdUpdateTokenConfig }

// FailStakeCommand forces a stake stuck in waiting_execution to failed and
// refunds its principal.
type FailStakeCommand struct {
	Sender  string
	Denom   string
	StakeID uint64
}

func (*FailStakeCommand) Type() CommandType { return CmdFailStake }

// FailUnstakeCommand forces an unstake stuck in waiting_registration to
// failed and returns its shares.
type FailUnstakeCommand struct {
	Sender    string
	Denom     string
	UnstakeID uint64
}

func (*FailUnstakeCommand) Type() CommandType { return CmdFailUnstake }

type MintSharesCommand struct {
	Sender     string
	Recipient  string
	LptAddress string
	Amount     *uint256.Int
}

func (*MintSharesCommand) Type() CommandType { return CmdMintShares }

type DisallowMintCommand struct {
	Sender string
}

func (*DisallowMintCommand) Type() CommandType { return CmdDisallowMint }

type UpdateContractConfigCommand struct {
	Sender string
	Config types.ContractConfig
}

func (*UpdateContractConfigCommand) Type() CommandType { return CmdUpdateContractConfig }

type UpdateBridgeConfigCommand struct {
	Sender string
	Config types.BridgeConfig
}

func (*UpdateBridgeConfigCommand) Type() CommandType { return CmdUpdateBridgeConfig }

func (s *Services) handleAddToken(ctx context.Context, tx *state.Tx, fx *effects, cmd Command) *types.Error {
	c := cmd.(*AddTokenCommand)
	if e := requireAdmin(tx, c.Sender); e != nil {
		return e
	}
	cfg := c.Config
	if e := s.registerToken(tx, c.Denom, &cfg); e != nil {
		return e
	}
	fx.emit(types.NewEvent("add_token").
		Add("token_denom", c.Denom).
		Add("lpt_symbol", cfg.LptSymbol).
		Add("lpt_name", cfg.LptName).
		Add("lpt_address", cfg.LptAddress).
		AddUint("decimals", uint64(cfg.DepositTokenDecimals)).
		Add("chain", cfg.Chain).
		Add("yield_contract", cfg.EvmYieldContract))
	return nil
}

func (s *Services) handleUpdateTokenConfig(ctx context.Context, tx *state.Tx, fx *effects, cmd Command) *types.Error {
	c := cmd.(*UpdateTokenConfigCommand)
	if e := requireAdmin(tx, c.Sender); e != nil {
		return e
	}
	cfg := c.Config
	if e := s.updateToken(tx, c.Denom, &cfg); e != nil {
		return e
	}
	fx.emit(types.NewEvent("update_token_config").Add("token_denom", c.Denom))
	return nil
}

func (s *Services) handleFailStake(ctx context.Context, tx *state.Tx, fx *effects, cmd Command) *types.Error {
	c := cmd.(*FailStakeCommand)
	if e := requireAdmin(tx, c.Sender); e != nil {
		return e
	}
	token, e := loadToken(tx, c.Denom)
	if e != nil {
		return e
	}
	item, e := loadStakeItem(tx, c.Denom, c.StakeID)
	if e != nil {
		return e
	}
	if !slices.Contains(utils.QualifiedStagesToSettleStake(), item.ActionStage) {
		return types.NewStakeInvalidStageError(token.DepositTokenSymbol, c.StakeID)
	}

	stats, e := loadStats(tx, c.Denom)
	if e != nil {
		return e
	}
	if stats.PendingStake, e = types.CheckedSub(stats.PendingStake, item.TokenAmount); e != nil {
		return e
	}
	if e := saveStats(tx, c.Denom, stats); e != nil {
		return e
	}
	if e := releaseSlot(tx, types.StakeQueue, c.Denom); e != nil {
		return e
	}
	item.ActionStage = types.StakeFailed
	if err := tx.SetStakeItem(c.Denom, c.StakeID, item); err != nil {
		return types.NewInternalServiceError(err)
	}

	fx.ledger(types.LedgerInstruction{
		Op: types.LedgerTransfer, Token: c.Denom, Recipient: item.User, Amount: item.TokenAmount,
	})
	fx.emit(types.NewEvent("fail_stake").
		Add("token_denom", c.Denom).
		AddUint("stake_id", c.StakeID).
		Add("user", item.User))
	return nil
}

func (s *Services) handleFailUnstake(ctx context.Context, tx *state.Tx, fx *effects, cmd Command) *types.Error {
	c := cmd.(*FailUnstakeCommand)
	if e := requireAdmin(tx, c.Sender); e != nil {
		return e
	}
	token, e := loadToken(tx, c.Denom)
	if e != nil {
		return e
	}
	item, e := loadUnstakeItem(tx, c.Denom, c.UnstakeID)
	if e != nil {
		return e
	}
	if !slices.Contains(utils.QualifiedStagesToFailUnstake(), item.ActionStage) {
		return types.NewUnstakeInvalidStageError(token.DepositTokenSymbol, c.UnstakeID)
	}

	stats, e := loadStats(tx, c.Denom)
	if e != nil {
		return e
	}
	if stats.PendingUnstakeLpTokenAmount, e = types.CheckedSub(stats.PendingUnstakeLpTokenAmount, item.LpTokenAmount); e != nil {
		return e
	}
	if e := saveStats(tx, c.Denom, stats); e != nil {
		return e
	}
	if e := releaseSlot(tx, types.UnstakeQueue, c.Denom); e != nil {
		return e
	}
	item.ActionStage = types.UnstakeFailed
	if err := tx.SetUnstakeItem(c.Denom, c.UnstakeID, item); err != nil {
		return types.NewInternalServiceError(err)
	}

	fx.ledger(types.LedgerInstruction{
		Op: types.LedgerTransfer, Token: token.LptAddress, Recipient: item.User, Amount: item.LpTokenAmount,
	})
	fx.emit(types.NewEvent("fail_unstake").
		Add("token_denom", c.Denom).
		AddUint("unstake_id", c.UnstakeID).
		Add("user", item.User))
	return nil
}

func (s *Services) handleMintShares(ctx context.Context, tx *state.Tx, fx *effects, cmd Command) *types.Error {
	c := cmd.(*MintSharesCommand)
	if e := requireAdmin(tx, c.Sender); e != nil {
		return e
	}
	contract, err := tx.ContractConfig()
	if err != nil {
		return types.NewInternalServiceError(err)
	}
	if !contract.IsMintAllowed {
		return types.NewErrorWithMsg(http.StatusForbidden, types.MintIsNotAllowed, "minting is not allowed")
	}
	if c.Amount == nil || c.Amount.IsZero() {
		return types.NewZeroAmountError()
	}
	if err := utils.ValidateHomeAddress(c.Recipient, s.cfg.Server.AddressPrefix); err != nil {
		return types.NewError(http.StatusBadRequest, types.ValidationError, err)
	}
	denom, _, e := tokenByLpt(tx, c.LptAddress)
	if e != nil {
		return e
	}

	stats, e := loadStats(tx, denom)
	if e != nil {
		return e
	}
	if stats.LpTokenAmount, e = types.CheckedAdd(stats.LpTokenAmount, c.Amount); e != nil {
		return e
	}
	if e := saveStats(tx, denom, stats); e != nil {
		return e
	}

	fx.ledger(types.LedgerInstruction{
		Op: types.LedgerMint, Token: c.LptAddress, Recipient: c.Recipient, Amount: c.Amount,
	})
	fx.emit(types.NewEvent("mint_lpt").
		Add("lpt_address", c.LptAddress).
		Add("to", c.Recipient).
		AddAmount("amount", c.Amount))
	return nil
}

func (s *Services) handleDisallowMint(ctx context.Context, tx *state.Tx, fx *effects, cmd Command) *types.Error {
	c := cmd.(*DisallowMintCommand)
	if e := requireAdmin(tx, c.Sender); e != nil {
		return e
	}
	contract, err := tx.ContractConfig()
	if err != nil {
		return types.NewInternalServiceError(err)
	}
	contract.IsMintAllowed = false
	if err := tx.SetContractConfig(contract); err != nil {
		return types.NewInternalServiceError(err)
	}
	fx.emit(types.NewEvent("disallow_mint"))
	return nil
}

// handleUpdateContractConfig replaces the trusted identities. Minting, once
// disallowed, can not be enabled again.
func (s *Services) handleUpdateContractConfig(ctx context.Context, tx *state.Tx, fx *effects, cmd Command) *types.Error {
	c := cmd.(*UpdateContractConfigCommand)
	if e := requireAdmin(tx, c.Sender); e != nil {
		return e
	}
	for _, addr := range []string{c.Config.Owner, c.Config.Bridge} {
		if err := utils.ValidateHomeAddress(addr, s.cfg.Server.AddressPrefix); err != nil {
			return types.NewError(http.StatusBadRequest, types.ValidationError, err)
		}
	}
	current, err := tx.ContractConfig()
	if err != nil {
		return types.NewInternalServiceError(err)
	}
	if c.Config.IsMintAllowed && !current.IsMintAllowed {
		return types.NewErrorWithMsg(http.StatusForbidden, types.MintIsNotAllowed, "minting was disallowed permanently")
	}

	cfg := c.Config
	if err := tx.SetContractConfig(&cfg); err != nil {
		return types.NewInternalServiceError(err)
	}
	fx.emit(types.NewEvent("update_contract_config").
		Add("owner", cfg.Owner).
		Add("bridge", cfg.Bridge))
	return nil
}

func (s *Services) handleUpdateBridgeConfig(ctx context.Context, tx *state.Tx, fx *effects, cmd Command) *types.Error {
	c := cmd.(*UpdateBridgeConfigCommand)
	if e := requireAdmin(tx, c.Sender); e != nil {
		return e
	}
	cfg := c.Config
	if cfg.ChannelID == "" || cfg.GatewayAddress == "" {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.ValidationError, "channel id and gateway address are required")
	}
	if cfg.TimeoutSeconds == 0 {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.ValidationError, "timeout seconds must be positive")
	}
	if cfg.FeeAmount != "" {
		if _, err := types.ParseAmount(cfg.FeeAmount); err != nil {
			return types.NewError(http.StatusBadRequest, types.ValidationError, err)
		}
		if cfg.FeeRecipientAddress == "" {
			return types.NewErrorWithMsg(http.StatusBadRequest, types.ValidationError, "fee recipient is required with a fee amount")
		}
	}

	if err := tx.SetBridgeConfig(&cfg); err != nil {
		return types.NewInternalServiceError(err)
	}
	fx.emit(types.NewEvent("update_bridge_config").Add("channel_id", cfg.ChannelID))
	return nil
}
