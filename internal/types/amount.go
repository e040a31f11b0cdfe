package types

import (
	"fmt"
	"net/http"

	"github.com/holiman/uint256"
)

// MaxAmountBits is the width of every per-request amount on the wire.
const MaxAmountBits = 128

func ZeroAmount256() *uint256.Int {
	return new(uint256.Int)
}

// ParseAmount parses a decimal string into an unsigned amount that must fit
// into 128 bits.
func ParseAmount(s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if v.BitLen() > MaxAmountBits {
		return nil, fmt.Errorf("amount %s exceeds %d bits", s, MaxAmountBits)
	}
	return v, nil
}

func IsU128(v *uint256.Int) bool {
	return v != nil && v.BitLen() <= MaxAmountBits
}

// CheckedSub returns x - y. A negative result is an invariant violation and is
// never clamped.
func CheckedSub(x, y *uint256.Int) (*uint256.Int, *Error) {
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, NewErrorWithMsg(
			http.StatusInternalServerError, ArithmeticUnderflow,
			fmt.Sprintf("arithmetic underflow: %s - %s", x.Dec(), y.Dec()),
		)
	}
	return z, nil
}

func CheckedAdd(x, y *uint256.Int) (*uint256.Int, *Error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, NewErrorWithMsg(
			http.StatusInternalServerError, ArithmeticOverflow,
			fmt.Sprintf("arithmetic overflow: %s + %s", x.Dec(), y.Dec()),
		)
	}
	return z, nil
}

// CheckedDecrement lowers a pending counter by one.
func CheckedDecrement(n uint64) (uint64, *Error) {
	if n == 0 {
		return 0, NewErrorWithMsg(
			http.StatusInternalServerError, ArithmeticUnderflow, "arithmetic underflow: pending count is already 0",
		)
	}
	return n - 1, nil
}
