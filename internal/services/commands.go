package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yieldward/yield-ward-service/internal/gmp"
	"github.com/yieldward/yield-ward-service/internal/observability/metrics"
	"github.com/yieldward/yield-ward-service/internal/state"
	"github.com/yieldward/yield-ward-service/internal/types"
)

// CommandType names an engine operation. It is unrelated to the wire
// ActionType carried in bridge payloads.
type CommandType string

const (
	CmdStake                CommandType = "stake"
	CmdUnstake              CommandType = "unstake"
	CmdHandleResponse       CommandType = "handle_response"
	CmdRequestReinit        CommandType = "request_reinit"
	CmdAddToken             CommandType = "add_token"
	CmdUpdateTokenConfig    CommandType = "update_token_config"
	CmdFailStake            CommandType = "fail_stake"
	CmdFailUnstake          CommandType = "fail_unstake"
	CmdMintShares           CommandType = "mint_shares"
	CmdDisallowMint         CommandType = "disallow_mint"
	CmdUpdateContractConfig CommandType = "update_contract_config"
	CmdUpdateBridgeConfig   CommandType = "update_bridge_config"
)

type Command interface {
	Type() CommandType
}

type commandHandler func(s *Services, ctx context.Context, tx *state.Tx, fx *effects, cmd Command) *types.Error

var commandHandlers = map[CommandType]commandHandler{
	CmdStake:                (*Services).handleStake,
	CmdUnstake:              (*Services).handleUnstake,
	CmdHandleResponse:       (*Services).handleResponse,
	CmdRequestReinit:        (*Services).handleRequestReinit,
	CmdAddToken:             (*Services).handleAddToken,
	CmdUpdateTokenConfig:    (*Services).handleUpdateTokenConfig,
	CmdFailStake:            (*Services).handleFailStake,
	CmdFailUnstake:          (*Services).handleFailUnstake,
	CmdMintShares:           (*Services).handleMintShares,
	CmdDisallowMint:         (*Services).handleDisallowMint,
	CmdUpdateContractConfig: (*Services).handleUpdateContractConfig,
	CmdUpdateBridgeConfig:   (*Services).handleUpdateBridgeConfig,
}

// Result is what a committed command reports back to its caller.
type Result struct {
	Events []*types.Event `json:"events"`
}

// Event returns the first emitted event of the given type.
func (r *Result) Event(eventType string) *types.Event {
	for _, e := range r.Events {
		if e.Type == eventType {
			return e
		}
	}
	return nil
}

// Execute runs cmd in a single store transaction. Either every state change
// and outbox record of the command commits, or none does.
func (s *Services) Execute(ctx context.Context, cmd Command) (*Result, *types.Error) {
	handler, ok := commandHandlers[cmd.Type()]
	if !ok {
		return nil, types.NewErrorWithMsg(
			http.StatusBadRequest, types.BadRequest, fmt.Sprintf("unknown command: %s", cmd.Type()),
		)
	}

	fx := &effects{}
	err := s.Store.Update(ctx, func(tx *state.Tx) error {
		if e := handler(s, ctx, tx, fx, cmd); e != nil {
			return e
		}
		return fx.flush(tx)
	})
	if err != nil {
		var engineErr *types.Error
		if !errors.As(err, &engineErr) {
			engineErr = types.NewInternalServiceError(err)
		}
		metrics.RecordEngineOperation(string(cmd.Type()), engineErr.ErrorCode.String())
		if engineErr.IsClientError() {
			log.Ctx(ctx).Warn().Err(engineErr).Str("command", string(cmd.Type())).Msg("command rejected")
		} else {
			log.Ctx(ctx).Error().Err(engineErr).Str("command", string(cmd.Type())).Msg("command failed")
		}
		return nil, engineErr
	}

	metrics.RecordEngineOperation(string(cmd.Type()), "ok")
	return &Result{Events: fx.events}, nil
}

type effect struct {
	kind types.OutboxKind
	body any
}

// effects collects the outbound side effects of one command in emission
// order. They reach the outbox only if the command succeeds.
type effects struct {
	pending []effect
	events  []*types.Event
}

func (fx *effects) send(envelope *gmp.Envelope) {
	fx.pending = append(fx.pending, effect{kind: types.OutboxGmp, body: envelope})
}

func (fx *effects) ledger(instruction types.LedgerInstruction) {
	fx.pending = append(fx.pending, effect{kind: types.OutboxLedger, body: instruction})
}

func (fx *effects) emit(event *types.Event) {
	fx.events = append(fx.events, event)
	fx.pending = append(fx.pending, effect{kind: types.OutboxEvent, body: event})
}

func (fx *effects) flush(tx *state.Tx) error {
	for _, e := range fx.pending {
		if _, err := tx.AppendOutbox(e.kind, e.body); err != nil {
			return err
		}
	}
	return nil
}
