package kernel

import "github.com/shopspring/decimal"

// mulRoundHalfUp returns round(amountMinor × factor) to a whole minor unit.
func mulRoundHalfUp(amountMinor int64, factor decimal.Decimal) int64 {
	return decimal.NewFromInt(amountMinor).Mul(factor).Round(0).IntPart()
}

// divRoundHalfUp returns round(numerator / denominator) to a whole minor unit.
// The quotient is computed exactly before rounding.
func divRoundHalfUp(numerator, denominator decimal.Decimal) int64 {
	return numerator.DivRound(denominator, 0).IntPart()
}
