package state

import (
	"encoding/json"

	"github.com/yieldward/yield-ward-service/internal/types"
)

func (t *Tx) ContractConfig() (*types.ContractConfig, error) {
	return getJSON[types.ContractConfig](t.bucket(bucketContract), keyContractConfig)
}

func (t *Tx) SetContractConfig(cfg *types.ContractConfig) error {
	return putJSON(t.bucket(bucketContract), keyContractConfig, cfg)
}

func (t *Tx) BridgeConfig() (*types.BridgeConfig, error) {
	return getJSON[types.BridgeConfig](t.bucket(bucketContract), keyBridgeConfig)
}

func (t *Tx) SetBridgeConfig(cfg *types.BridgeConfig) error {
	return putJSON(t.bucket(bucketContract), keyBridgeConfig, cfg)
}

func (t *Tx) Token(denom string) (*types.TokenConfig, error) {
	return getJSON[types.TokenConfig](t.bucket(bucketTokens), []byte(denom))
}

func (t *Tx) HasToken(denom string) bool {
	return t.bucket(bucketTokens).Get([]byte(denom)) != nil
}

func (t *Tx) SetToken(denom string, cfg *types.TokenConfig) error {
	return putJSON(t.bucket(bucketTokens), []byte(denom), cfg)
}

// Tokens lists every registered token ordered by denom.
func (t *Tx) Tokens() ([]types.TokenEntry, error) {
	var entries []types.TokenEntry
	err := t.bucket(bucketTokens).ForEach(func(k, v []byte) error {
		var cfg types.TokenConfig
		if err := json.Unmarshal(v, &cfg); err != nil {
			return err
		}
		entries = append(entries, types.TokenEntry{Denom: string(k), Config: cfg})
		return nil
	})
	return entries, err
}
