package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// EffectivePrice applies a percentage discount to a base price.
// A discount of zero (or below) leaves the price untouched; otherwise the
// result is rounded to whole currency units.
func EffectivePrice(price, discount decimal.Decimal) decimal.Decimal {
	if !discount.IsPositive() {
		return price
	}
	factor := decimal.NewFromInt(1).Sub(discount.Div(hundred))
	return price.Mul(factor).Round(0)
}

// LineTotal is the effective unit price multiplied by quantity.
func LineTotal(price, discount decimal.Decimal, quantity int) decimal.Decimal {
	return EffectivePrice(price, discount).Mul(decimal.NewFromInt(int64(quantity)))
}

// ValidDiscount reports whether d is a percentage in [0,100].
func ValidDiscount(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(hundred)
}
