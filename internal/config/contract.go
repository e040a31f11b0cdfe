package config

import (
	"fmt"

	"github.com/yieldward/yield-ward-service/internal/types"
	"github.com/yieldward/yield-ward-service/internal/utils"
)

// ContractConfig seeds the trusted identities on first start.
type ContractConfig struct {
	Owner         string `mapstructure:"owner"`
	Bridge        string `mapstructure:"bridge"`
	IsMintAllowed bool   `mapstructure:"is-mint-allowed"`
}

func (cfg *ContractConfig) Validate(prefix string) error {
	if err := utils.ValidateHomeAddress(cfg.Owner, prefix); err != nil {
		return fmt.Errorf("invalid contract owner: %w", err)
	}

	if err := utils.ValidateHomeAddress(cfg.Bridge, prefix); err != nil {
		return fmt.Errorf("invalid contract bridge: %w", err)
	}

	return nil
}

func (cfg *ContractConfig) ToContractConfig() *types.ContractConfig {
	return &types.ContractConfig{
		Owner:         cfg.Owner,
		Bridge:        cfg.Bridge,
		IsMintAllowed: cfg.IsMintAllowed,
	}
}
