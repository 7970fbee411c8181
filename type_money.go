package margin

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an amount to display in a currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency, nil if the code is unknown.
func (m Money) currency() *money.Currency {
	return money.GetCurrency(m.cur)
}

// Fraction returns the number of decimal digits of the currency, 2 when the
// currency is unknown.
func (m Money) Fraction() int32 {
	if cur := m.currency(); cur != nil {
		return int32(cur.Fraction)
	}
	return 2
}

// String returns the amount formatted with the currency symbol, rounded to
// the currency's fraction.
func (m Money) String() string {
	cur := m.currency()
	if cur == nil {
		return m.value.StringFixed(2)
	}
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// Amount returns the amount rounded to the currency's fraction, without symbol.
func (m Money) Amount() string { return m.value.StringFixed(m.Fraction()) }
