package config

import (
	"errors"

	"github.com/yieldward/yield-ward-service/internal/types"
)

// BridgeConfig seeds the stored bridge settings on first start. Later changes
// go through the admin API.
type BridgeConfig struct {
	ChannelID           string `mapstructure:"channel-id"`
	GatewayAddress      string `mapstructure:"gateway-address"`
	FeeRecipientAddress string `mapstructure:"fee-recipient-address"`
	FeeAmount           string `mapstructure:"fee-amount"`
	TimeoutSeconds      uint64 `mapstructure:"timeout-seconds"`
}

func (cfg *BridgeConfig) Validate() error {
	if cfg.ChannelID == "" {
		return errors.New("missing bridge channel-id")
	}

	if cfg.GatewayAddress == "" {
		return errors.New("missing bridge gateway-address")
	}

	if cfg.TimeoutSeconds == 0 {
		return errors.New("bridge timeout-seconds must be positive")
	}

	if cfg.FeeAmount != "" {
		if _, err := types.ParseAmount(cfg.FeeAmount); err != nil {
			return err
		}
		if cfg.FeeRecipientAddress == "" {
			return errors.New("fee-recipient-address is required with fee-amount")
		}
	}

	return nil
}

func (cfg *BridgeConfig) ToBridgeConfig() *types.BridgeConfig {
	return &types.BridgeConfig{
		ChannelID:           cfg.ChannelID,
		GatewayAddress:      cfg.GatewayAddress,
		FeeRecipientAddress: cfg.FeeRecipientAddress,
		FeeAmount:           cfg.FeeAmount,
		TimeoutSeconds:      cfg.TimeoutSeconds,
	}
}
