package utils

import (
	"github.com/yieldward/yield-ward-service/internal/types"
)

// QualifiedStagesToSettleStake returns the stake stages a response or an
// admin failure may move out of.
func QualifiedStagesToSettleStake() []types.StakeStage {
	return []types.StakeStage{types.StakeWaitingExecution}
}

// QualifiedStagesToRegister returns the unstake stages an unstake response
// may move out of.
func QualifiedStagesToRegister() []types.UnstakeStage {
	return []types.UnstakeStage{types.UnstakeWaitingRegistration}
}

// QualifiedStagesToReinit returns the unstake stages a reinit settlement may
// move out of.
func QualifiedStagesToReinit() []types.UnstakeStage {
	return []types.UnstakeStage{types.UnstakeRegistered}
}

// QualifiedStagesToFailUnstake returns the unstake stages the admin may force
// to failed.
func QualifiedStagesToFailUnstake() []types.UnstakeStage {
	return []types.UnstakeStage{types.UnstakeWaitingRegistration}
}
