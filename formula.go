package margin

import "github.com/shopspring/decimal"

// The pricing formulas. They never divide by zero: a zero divisor yields the
// documented fallback instead.

var hundred = decimal.NewFromInt(100)

// MarkupOf returns (price-cost)/cost*100, or 0 when cost is zero.
func MarkupOf(cost, price decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return price.Sub(cost).Mul(hundred).Div(cost)
}

// MarginOf returns (price-cost)/price*100, or 0 when price is zero.
func MarginOf(cost, price decimal.Decimal) decimal.Decimal {
	if price.IsZero() {
		return decimal.Zero
	}
	return price.Sub(cost).Mul(hundred).Div(price)
}

// PriceFromMarkup returns cost*(1+markup/100).
func PriceFromMarkup(cost, markup decimal.Decimal) decimal.Decimal {
	return cost.Mul(decimal.NewFromInt(1).Add(markup.Div(hundred)))
}

// PriceFromMargin returns cost/(1-margin/100).
// A margin of 100% or more has no positive price; the price is clamped to cost.
func PriceFromMargin(cost, margin decimal.Decimal) decimal.Decimal {
	if margin.GreaterThanOrEqual(hundred) {
		return cost
	}
	return cost.Div(decimal.NewFromInt(1).Sub(margin.Div(hundred)))
}

// CostFromMarkup returns price/(1+markup/100).
// A markup of exactly -100% has no solution; the cost is clamped to price.
func CostFromMarkup(price, markup decimal.Decimal) decimal.Decimal {
	divisor := decimal.NewFromInt(1).Add(markup.Div(hundred))
	if divisor.IsZero() {
		return price
	}
	return price.Div(divisor)
}

// CostFromMargin returns price*(1-margin/100).
func CostFromMargin(price, margin decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(1).Sub(margin.Div(hundred)))
}
