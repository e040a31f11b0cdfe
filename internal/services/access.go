package services

import (
	"github.com/yieldward/yield-ward-service/internal/state"
	"github.com/yieldward/yield-ward-service/internal/types"
)

// AccessControl answers who may call privileged operations.
type AccessControl interface {
	IsAdmin(sender string) bool
	IsBridge(sender string) bool
}

// accessControl reads the trusted identities inside the caller's transaction.
func accessControl(tx *state.Tx) (AccessControl, *types.Error) {
	cfg, err := tx.ContractConfig()
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	return cfg, nil
}

func requireAdmin(tx *state.Tx, sender string) *types.Error {
	ac, e := accessControl(tx)
	if e != nil {
		return e
	}
	if !ac.IsAdmin(sender) {
		return types.NewUnauthorizedError(sender)
	}
	return nil
}

func requireBridge(tx *state.Tx, sender string) *types.Error {
	ac, e := accessControl(tx)
	if e != nil {
		return e
	}
	if !ac.IsBridge(sender) {
		return types.NewUnauthorizedError(sender)
	}
	return nil
}
