package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ERC-20 amounts carry at most 18 fractional digits.
const MaxDecimalPlaces = 18

// ConvertToSTI converts a ZEC amount to STI at the given rate, truncated
// toward zero to 18 decimal places. Truncation (not rounding) was chosen so a
// conversion can never overstate the amount being sent.
func ConvertToSTI(amountZEC, rate decimal.Decimal) decimal.Decimal {
	return amountZEC.Mul(rate).Truncate(MaxDecimalPlaces)
}

// FixedSTIString renders an STI amount as a plain base-10 string with exactly
// 18 fractional digits, never in exponential notation.
func FixedSTIString(sti decimal.Decimal) string {
	return sti.Truncate(MaxDecimalPlaces).StringFixed(MaxDecimalPlaces)
}

// ToBaseUnits scales a token amount to on-chain base units at the contract's
// declared precision. Amounts with significant digits below one base unit are
// rejected rather than silently truncated.
func ToBaseUnits(amount decimal.Decimal, decimals uint8) (*big.Int, error) {
	shifted := amount.Shift(int32(decimals))
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("amount %s has more than %d decimal places", amount.String(), decimals)
	}
	return shifted.BigInt(), nil
}

// FormatUnits renders base units as a human-readable decimal string with
// trailing zeros trimmed and at least one fractional digit, so a zero balance
// reads "0.0".
func FormatUnits(v *big.Int, decimals uint8) string {
	s := decimal.NewFromBigInt(v, -int32(decimals)).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
