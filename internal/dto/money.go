package dto

import "github.com/shopspring/decimal"

// money rescales an amount to two fractional digits, so every monetary field
// serializes as "123.45" style regardless of how the value was computed.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
