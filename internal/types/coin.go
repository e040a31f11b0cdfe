package types

import (
	"github.com/holiman/uint256"
)

// Coin is an amount of a single home-ledger denomination.
type Coin struct {
	Denom  string       `json:"denom"`
	Amount *uint256.Int `json:"amount"`
}

func NewCoin(denom string, amount uint64) Coin {
	return Coin{Denom: denom, Amount: uint256.NewInt(amount)}
}

func (c Coin) IsZero() bool {
	return c.Amount == nil || c.Amount.IsZero()
}

// Coins is the set of funds attached to a call.
type Coins []Coin

// Carried returns the single non-zero coin attached to a call, or nil when no
// value is attached. More than one coin is never valid for this service.
func (c Coins) Carried() (*Coin, *Error) {
	switch len(c) {
	case 0:
		return nil, nil
	case 1:
		if c[0].IsZero() {
			return nil, nil
		}
		coin := c[0]
		return &coin, nil
	default:
		return nil, NewInvalidFundsError("more than one coin attached")
	}
}
