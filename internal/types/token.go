package types

// TokenConfig describes a deposit token and the remote yield position it is
// staked into.
type TokenConfig struct {
	IsStakeEnabled       bool   `json:"is_stake_enabled" yaml:"is_stake_enabled"`
	IsUnstakeEnabled     bool   `json:"is_unstake_enabled" yaml:"is_unstake_enabled"`
	Chain                string `json:"chain" yaml:"chain"`
	EvmYieldContract     string `json:"evm_yield_contract" yaml:"evm_yield_contract"`
	EvmAddress           string `json:"evm_address" yaml:"evm_address"`
	LptAddress           string `json:"lpt_address" yaml:"lpt_address"`
	LptSymbol            string `json:"lpt_symbol" yaml:"lpt_symbol"`
	LptName              string `json:"lpt_name" yaml:"lpt_name"`
	DepositTokenSymbol   string `json:"deposit_token_symbol" yaml:"deposit_token_symbol"`
	DepositTokenDecimals uint8  `json:"deposit_token_decimals" yaml:"deposit_token_decimals"`
}

// TokenEntry pairs a token denom with its config for listing.
type TokenEntry struct {
	Denom  string      `json:"denom"`
	Config TokenConfig `json:"config"`
}

// ContractConfig holds the identities the engine trusts.
type ContractConfig struct {
	Owner         string `json:"owner"`
	Bridge        string `json:"bridge"`
	IsMintAllowed bool   `json:"is_mint_allowed"`
}

func (c *ContractConfig) IsAdmin(sender string) bool {
	return sender != "" && sender == c.Owner
}

func (c *ContractConfig) IsBridge(sender string) bool {
	return sender != "" && sender == c.Bridge
}

// BridgeConfig describes how outbound messages reach the bridge gateway.
type BridgeConfig struct {
	ChannelID           string `json:"channel_id"`
	GatewayAddress      string `json:"gateway_address"`
	FeeRecipientAddress string `json:"fee_recipient_address"`
	FeeAmount           string `json:"fee_amount,omitempty"`
	TimeoutSeconds      uint64 `json:"timeout_seconds"`
}
