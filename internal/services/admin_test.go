package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yieldward/yield-ward-service/internal/config"
	"github.com/yieldward/yield-ward-service/internal/db"
	"github.com/yieldward/yield-ward-service/internal/db/model"
	"github.com/yieldward/yield-ward-service/internal/mocks"
	"github.com/yieldward/yield-ward-service/internal/state"
	"github.com/yieldward/yield-ward-service/internal/types"
)

func TestAddToken(t *testing.T) {
	f := newFixture(t)

	_, e := f.exec(&AddTokenCommand{Sender: f.alice, Denom: testDenom, Config: f.tokenConfig()})
	requireCode(t, e, types.Unauthorized)

	res := f.mustExec(&AddTokenCommand{Sender: f.owner, Denom: testDenom, Config: f.tokenConfig()})
	require.NotNil(t, res.Event("add_token"))
	assert.Equal(t, types.NewQueueParams(), f.params(types.StakeQueue))
	assert.Equal(t, types.NewQueueParams(), f.params(types.UnstakeQueue))
	assert.True(t, f.stats().LpTokenAmount.IsZero())

	_, e = f.exec(&AddTokenCommand{Sender: f.owner, Denom: testDenom, Config: f.tokenConfig()})
	requireCode(t, e, types.TokenAlreadyExists)

	// same remote source under another denom
	other := f.tokenConfig()
	other.LptAddress = homeAddress(t, "lpt2")
	_, e = f.exec(&AddTokenCommand{Sender: f.owner, Denom: "t2", Config: other})
	requireCode(t, e, types.TokenIndexConflict)

	bad := f.tokenConfig()
	bad.EvmYieldContract = "0x1234"
	_, e = f.exec(&AddTokenCommand{Sender: f.owner, Denom: "t3", Config: bad})
	requireCode(t, e, types.ValidationError)

	bad = f.tokenConfig()
	bad.LptAddress = "cosmos1notours"
	_, e = f.exec(&AddTokenCommand{Sender: f.owner, Denom: "t4", Config: bad})
	requireCode(t, e, types.ValidationError)

	tokens, e := f.svc.GetTokens(f.ctx)
	require.Nil(t, e)
	require.Len(t, tokens, 1)
	assert.Equal(t, testDenom, tokens[0].Denom)
}

func TestUpdateTokenConfig_MovesIndices(t *testing.T) {
	f := newFixture(t)
	f.addToken()

	moved := f.tokenConfig()
	moved.EvmYieldContract = "0x00000000000000000000000000000000000000aa"
	moved.LptAddress = homeAddress(t, "lpt2")
	f.mustExec(&UpdateTokenConfigCommand{Sender: f.owner, Denom: testDenom, Config: moved})

	_, e := f.svc.GetTokenBySource(f.ctx, testChain, testYieldSource)
	requireCode(t, e, types.UnknownTokenBySource)
	entry, e := f.svc.GetTokenBySource(f.ctx, testChain, "0x00000000000000000000000000000000000000AA")
	require.Nil(t, e)
	assert.Equal(t, testDenom, entry.Denom)

	_, e = f.svc.GetTokenByLpt(f.ctx, f.lpt)
	requireCode(t, e, types.UnknownLpToken)
	entry, e = f.svc.GetTokenByLpt(f.ctx, moved.LptAddress)
	require.Nil(t, e)
	assert.Equal(t, testDenom, entry.Denom)

	_, e = f.exec(&UpdateTokenConfigCommand{Sender: f.owner, Denom: "missing", Config: moved})
	requireCode(t, e, types.UnknownToken)
}

func TestFailStake(t *testing.T) {
	f := newFixture(t)
	f.addToken()
	id := f.stake(f.alice, 500)

	_, e := f.exec(&FailStakeCommand{Sender: f.bob, Denom: testDenom, StakeID: id})
	requireCode(t, e, types.Unauthorized)

	res := f.mustExec(&FailStakeCommand{Sender: f.owner, Denom: testDenom, StakeID: id})
	require.NotNil(t, res.Event("fail_stake"))
	assert.Equal(t, types.StakeFailed, f.stakeItem(id).ActionStage)
	assert.Equal(t, uint64(0), f.params(types.StakeQueue).PendingCount)
	assert.Equal(t, "0", f.stats().PendingStake.Dec())
	assert.Equal(t, []types.LedgerInstruction{{
		Op: types.LedgerTransfer, Token: testDenom, Recipient: f.alice, Amount: uint256.NewInt(500),
	}}, f.ledgerInstructions())

	_, e = f.exec(&FailStakeCommand{Sender: f.owner, Denom: testDenom, StakeID: id})
	requireCode(t, e, types.StakeRequestInvalidStage)
	_, e = f.respond(types.ActionStake, stakeResponse(t, types.StatusSuccess, id, 0, 500), nil)
	requireCode(t, e, types.StakeRequestInvalidStage)

	_, e = f.exec(&FailStakeCommand{Sender: f.owner, Denom: testDenom, StakeID: 77})
	requireCode(t, e, types.StakeNotFound)
	f.assertConservation()
}

func TestFailUnstake(t *testing.T) {
	f := newFixture(t)
	f.addToken()
	id := f.unstake(f.bob, 40)

	res := f.mustExec(&FailUnstakeCommand{Sender: f.owner, Denom: testDenom, UnstakeID: id})
	require.NotNil(t, res.Event("fail_unstake"))
	assert.Equal(t, types.UnstakeFailed, f.unstakeItem(id).ActionStage)
	assert.Equal(t, uint64(0), f.params(types.UnstakeQueue).PendingCount)
	assert.Equal(t, "0", f.stats().PendingUnstakeLpTokenAmount.Dec())
	assert.Equal(t, []types.LedgerInstruction{{
		Op: types.LedgerTransfer, Token: f.lpt, Recipient: f.bob, Amount: uint256.NewInt(40),
	}}, f.ledgerInstructions())

	registered := f.registered(f.alice, 10)
	_, e := f.exec(&FailUnstakeCommand{Sender: f.owner, Denom: testDenom, UnstakeID: registered})
	requireCode(t, e, types.UnstakeRequestInvalidStage)
	f.assertConservation()
}

func TestMintSharesAndDisallowMint(t *testing.T) {
	f := newFixture(t)
	f.addToken()

	res := f.mustExec(&MintSharesCommand{Sender: f.owner, Recipient: f.bob, LptAddress: f.lpt, Amount: uint256.NewInt(90)})
	require.NotNil(t, res.Event("mint_lpt"))
	assert.Equal(t, "90", f.stats().LpTokenAmount.Dec())
	assert.Equal(t, []types.LedgerInstruction{{
		Op: types.LedgerMint, Token: f.lpt, Recipient: f.bob, Amount: uint256.NewInt(90),
	}}, f.ledgerInstructions())

	_, e := f.exec(&MintSharesCommand{Sender: f.owner, Recipient: f.bob, LptAddress: f.lpt, Amount: uint256.NewInt(0)})
	requireCode(t, e, types.ZeroAmount)
	_, e = f.exec(&MintSharesCommand{Sender: f.owner, Recipient: "nope", LptAddress: f.lpt, Amount: uint256.NewInt(1)})
	requireCode(t, e, types.ValidationError)

	f.mustExec(&DisallowMintCommand{Sender: f.owner})
	_, e = f.exec(&MintSharesCommand{Sender: f.owner, Recipient: f.bob, LptAddress: f.lpt, Amount: uint256.NewInt(1)})
	requireCode(t, e, types.MintIsNotAllowed)

	_, e = f.exec(&UpdateContractConfigCommand{Sender: f.owner, Config: types.ContractConfig{
		Owner: f.owner, Bridge: f.bridge, IsMintAllowed: true,
	}})
	requireCode(t, e, types.MintIsNotAllowed)
	assert.Equal(t, http.StatusForbidden, e.StatusCode)
}

func TestUpdateContractConfig_RotatesOwner(t *testing.T) {
	f := newFixture(t)

	f.mustExec(&UpdateContractConfigCommand{Sender: f.owner, Config: types.ContractConfig{
		Owner: f.alice, Bridge: f.bridge, IsMintAllowed: true,
	}})
	_, e := f.exec(&DisallowMintCommand{Sender: f.owner})
	requireCode(t, e, types.Unauthorized)
	f.mustExec(&DisallowMintCommand{Sender: f.alice})

	_, e = f.exec(&UpdateContractConfigCommand{Sender: f.alice, Config: types.ContractConfig{
		Owner: "bad", Bridge: f.bridge,
	}})
	requireCode(t, e, types.ValidationError)

	cfg, e := f.svc.GetConfig(f.ctx)
	require.Nil(t, e)
	assert.Equal(t, f.alice, cfg.Contract.Owner)
	assert.False(t, cfg.Contract.IsMintAllowed)
	assert.Equal(t, "channel-0", cfg.Bridge.ChannelID)
}

func TestUpdateBridgeConfig(t *testing.T) {
	f := newFixture(t)
	f.addToken()

	_, e := f.exec(&UpdateBridgeConfigCommand{Sender: f.owner, Config: types.BridgeConfig{ChannelID: "channel-1"}})
	requireCode(t, e, types.ValidationError)
	_, e = f.exec(&UpdateBridgeConfigCommand{Sender: f.owner, Config: types.BridgeConfig{
		ChannelID: "channel-1", GatewayAddress: "gw", TimeoutSeconds: 60, FeeAmount: "12",
	}})
	requireCode(t, e, types.ValidationError)

	f.mustExec(&UpdateBridgeConfigCommand{Sender: f.owner, Config: types.BridgeConfig{
		ChannelID: "channel-1", GatewayAddress: "gw", TimeoutSeconds: 60, FeeAmount: "12", FeeRecipientAddress: "relayer",
	}})
	f.stake(f.alice, 10)
	env := f.lastEnvelope()
	assert.Equal(t, "channel-1", env.ChannelID)
	require.NotNil(t, env.Memo.Fee)
	assert.Equal(t, "12", env.Memo.Fee.Amount)
}

func TestBootstrap_RegistersTokensOnce(t *testing.T) {
	f := newFixture(t)
	boot := &config.TokenBootstrap{Tokens: []config.TokenBootstrapEntry{
		{Denom: testDenom, TokenConfig: f.tokenConfig()},
	}}
	require.NoError(t, f.svc.Bootstrap(f.ctx, boot))
	f.stake(f.alice, 10)
	require.NoError(t, f.svc.Bootstrap(f.ctx, boot))

	assert.Equal(t, types.QueueParams{PendingCount: 1, NextID: 2}, f.params(types.StakeQueue))
}

func TestQueries(t *testing.T) {
	f := newFixture(t)
	f.addToken()
	id := f.stake(f.alice, 1000)
	_, e := f.respond(types.ActionStake, stakeResponse(t, types.StatusSuccess, id, 0, 1001), nil)
	require.Nil(t, e)

	params, e := f.svc.GetQueueParams(f.ctx, types.StakeQueue, testDenom)
	require.Nil(t, e)
	assert.Equal(t, &QueueParamsPublic{Denom: testDenom, PendingCount: 0, NextID: 2}, params)

	item, e := f.svc.GetStakeItem(f.ctx, testDenom, id)
	require.Nil(t, e)
	assert.Equal(t, "1000", item.TokenAmount)
	assert.Equal(t, "1001", item.LpTokenAmount)
	assert.Equal(t, "executed", item.ActionStage)

	_, e = f.svc.GetUnstakeItem(f.ctx, testDenom, 1)
	requireCode(t, e, types.UnstakeNotFound)
	assert.Equal(t, http.StatusNotFound, e.StatusCode)

	_, e = f.svc.GetQueueParams(f.ctx, types.UnstakeQueue, "missing")
	requireCode(t, e, types.UnknownToken)

	stats, e := f.svc.GetAllStats(f.ctx)
	require.Nil(t, e)
	require.Len(t, stats, 1)
	assert.Equal(t, "1001", stats[0].Stats.LpTokenAmount.Dec())
}

func TestGetEvents(t *testing.T) {
	f := newFixture(t)
	dbClient := mocks.NewDBClient(t)
	f.svc.DbClient = dbClient

	dbClient.On("FindEvents", mock.Anything, "stake", "").Return(&db.DbResultMap[model.EventDocument]{
		Data: []model.EventDocument{{Seq: 4, Type: "stake", Attributes: []types.Attribute{{Key: "stake_id", Value: "1"}}}},
		PaginationToken: "next",
	}, nil).Once()
	dbClient.On("FindEvents", mock.Anything, "", "garbage").
		Return(nil, &db.InvalidPaginationTokenError{Message: "Invalid pagination token"}).Once()
	dbClient.On("FindEvents", mock.Anything, "", "").Return(nil, errors.New("connection reset")).Once()

	events, token, e := f.svc.GetEvents(f.ctx, "stake", "")
	require.Nil(t, e)
	assert.Equal(t, "next", token)
	require.Len(t, events, 1)
	assert.Equal(t, int64(4), events[0].Seq)

	_, _, e = f.svc.GetEvents(f.ctx, "", "garbage")
	requireCode(t, e, types.BadRequest)

	_, _, e = f.svc.GetEvents(f.ctx, "", "")
	requireCode(t, e, types.InternalServiceError)
}

func TestExecute_StoreIsUntouchedOnRejection(t *testing.T) {
	f := newFixture(t)
	f.addToken()
	f.stake(f.alice, 10)

	var before, after []types.StakeStatsEntry
	require.NoError(t, f.svc.Store.View(f.ctx, func(tx *state.Tx) error {
		var err error
		before, err = tx.AllStats()
		return err
	}))
	_, e := f.exec(&FailStakeCommand{Sender: f.owner, Denom: testDenom, StakeID: 2})
	requireCode(t, e, types.StakeNotFound)
	require.NoError(t, f.svc.Store.View(f.ctx, func(tx *state.Tx) error {
		var err error
		after, err = tx.AllStats()
		return err
	}))
	assert.Equal(t, before, after)
}
