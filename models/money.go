package models

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers (49.99), not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Price builds a decimal from a literal such as "49.99".
func Price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// OptionalPrice returns a set NullDecimal.
func OptionalPrice(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(Price(s))
}

// PriceUpdate distinguishes a field left out of a JSON patch from one set
// to null. An explicit null clears the price.
type PriceUpdate struct {
	Set   bool
	Value decimal.NullDecimal
}

func (p *PriceUpdate) UnmarshalJSON(b []byte) error {
	p.Set = true
	return p.Value.UnmarshalJSON(b)
}
