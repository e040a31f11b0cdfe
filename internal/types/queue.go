package types

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
)

type QueueKind string

const (
	StakeQueue   QueueKind = "stake"
	UnstakeQueue QueueKind = "unstake"
)

// QueueParams tracks the outstanding requests of one (token, kind) queue.
type QueueParams struct {
	// Count of stake/unstake requests still waiting for a remote answer
	PendingCount uint64 `json:"pending_count"`
	// Id counter for stake/unstake requests
	NextID uint64 `json:"next_id"`
}

func NewQueueParams() QueueParams {
	return QueueParams{PendingCount: 0, NextID: 1}
}

type StakeStage string

const (
	StakeWaitingExecution StakeStage = "waiting_execution"
	StakeExecuted         StakeStage = "executed"
	StakeFailed           StakeStage = "failed"
)

func (s StakeStage) ToString() string {
	return string(s)
}

func (s *StakeStage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	stage, err := FromStringToStakeStage(raw)
	if err != nil {
		return err
	}
	*s = stage
	return nil
}

func FromStringToStakeStage(s string) (StakeStage, error) {
	switch s {
	case "waiting_execution":
		return StakeWaitingExecution, nil
	case "executed":
		return StakeExecuted, nil
	case "failed":
		return StakeFailed, nil
	default:
		return "", fmt.Errorf("invalid stake stage: %s", s)
	}
}

type UnstakeStage string

const (
	UnstakeWaitingRegistration UnstakeStage = "waiting_registration"
	UnstakeRegistered          UnstakeStage = "registered"
	UnstakeExecuted            UnstakeStage = "executed"
	UnstakeFailed              UnstakeStage = "failed"
)

func (s UnstakeStage) ToString() string {
	return string(s)
}

func (s *UnstakeStage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	stage, err := FromStringToUnstakeStage(raw)
	if err != nil {
		return err
	}
	*s = stage
	return nil
}

func FromStringToUnstakeStage(s string) (UnstakeStage, error) {
	switch s {
	case "waiting_registration":
		return UnstakeWaitingRegistration, nil
	case "registered":
		return UnstakeRegistered, nil
	case "executed":
		return UnstakeExecuted, nil
	case "failed":
		return UnstakeFailed, nil
	default:
		return "", fmt.Errorf("invalid unstake stage: %s", s)
	}
}

type StakeItem struct {
	User          string       `json:"user"`
	TokenAmount   *uint256.Int `json:"token_amount"`
	ActionStage   StakeStage   `json:"action_stage"`
	LpTokenAmount *uint256.Int `json:"lp_token_amount,omitempty"`
}

type UnstakeItem struct {
	User          string       `json:"user"`
	LpTokenAmount *uint256.Int `json:"lp_token_amount"`
	ActionStage   UnstakeStage `json:"action_stage"`
	TokenAmount   *uint256.Int `json:"token_amount,omitempty"`
}

// StakeStats are the per-token running totals derived from queue activity.
type StakeStats struct {
	PendingStake                *uint256.Int `json:"pending_stake"`
	LpTokenAmount               *uint256.Int `json:"lp_token_amount"`
	PendingUnstakeLpTokenAmount *uint256.Int `json:"pending_unstake_lp_token_amount"`
}

func NewStakeStats() *StakeStats {
	return &StakeStats{
		PendingStake:                new(uint256.Int),
		LpTokenAmount:               new(uint256.Int),
		PendingUnstakeLpTokenAmount: new(uint256.Int),
	}
}

type StakeStatsEntry struct {
	Denom string      `json:"denom"`
	Stats *StakeStats `json:"stats"`
}
