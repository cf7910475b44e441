package inventory

import "github.com/shopspring/decimal"

// BadgeLevel is the three-tier stock indicator shown on OUT rows and
// the low-stock dashboard.
type BadgeLevel string

const (
	BadgeRed    BadgeLevel = "red"
	BadgeYellow BadgeLevel = "yellow"
	BadgeGreen  BadgeLevel = "green"
)

// BadgeFor classifies a stock level: red when stock has reached zero
// or the minimum, yellow up to twice the minimum, green above that.
// Boundaries belong to the lower tier: stock == min is red,
// stock == 2*min is yellow.
func BadgeFor(stock, min decimal.Decimal) BadgeLevel {
	if stock.Sign() <= 0 || stock.LessThanOrEqual(min) {
		return BadgeRed
	}
	if stock.LessThanOrEqual(min.Mul(decimal.NewFromInt(2))) {
		return BadgeYellow
	}
	return BadgeGreen
}
