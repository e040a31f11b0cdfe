package utils

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ValidateHomeAddress checks that address is a bech32 address carrying the
// ledger's human readable prefix.
func ValidateHomeAddress(address, prefix string) error {
	hrp, data, err := bech32.Decode(address)
	if err != nil {
		return fmt.Errorf("can not decode address %q: %w", address, err)
	}
	if hrp != prefix {
		return fmt.Errorf("address %q has prefix %q, expected %q", address, hrp, prefix)
	}
	if len(data) == 0 {
		return fmt.Errorf("address %q has an empty payload", address)
	}
	return nil
}

// NormalizeRemoteAddress validates an EVM address and returns it lowercased.
// Remote addresses are compared case-insensitively everywhere.
func NormalizeRemoteAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("invalid remote address: %q", address)
	}
	return strings.ToLower(common.HexToAddress(address).Hex()), nil
}

// DecodePayloadHex decodes a 0x-prefixed hex payload.
func DecodePayloadHex(s string) ([]byte, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid payload hex: %w", err)
	}
	return b, nil
}

