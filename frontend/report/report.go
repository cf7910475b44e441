package report

import (
	"github.com/shopspring/decimal"

	"stockroom/inventory"
)

// Totals sums reported quantities into the IN and OUT buckets.
// ADJUST rows appear in the table but contribute to neither total.
func Totals(rows []inventory.MovementRow) (totalIn, totalOut decimal.Decimal) {
	for _, row := range rows {
		switch row.Type {
		case inventory.MovementIn:
			totalIn = totalIn.Add(row.Qty)
		case inventory.MovementOut:
			totalOut = totalOut.Add(row.Qty)
		}
	}
	return totalIn, totalOut
}
