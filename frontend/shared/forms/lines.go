// Package forms holds the repeatable line-item form shared by the
// stock-in, stock-out, adjust and purchase tabs: one schema-driven
// row renderer plus the parsing rules every tab applies identically.
package forms

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"stockroom/inventory"
)

// Schema parameterizes the shared line form per tab.
type Schema struct {
	// PickerCategory is the lookup list bound to the name field.
	PickerCategory inventory.Category
	// ShowBadge renders the per-row stock badge (OUT only).
	ShowBadge bool
}

// ParseQty coerces user quantity input. Empty or non-numeric text
// counts as zero; the row is still submitted if it has a name.
func ParseQty(s string) decimal.Decimal {
	q, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return q
}

// ParseLines reads the parallel line_name/line_qty form arrays in
// order. Rows are not filtered here; see ValidLines.
func ParseLines(values url.Values) []inventory.LineItem {
	names := values["line_name"]
	qtys := values["line_qty"]

	lines := make([]inventory.LineItem, 0, len(names))
	for i, name := range names {
		var qty decimal.Decimal
		if i < len(qtys) {
			qty = ParseQty(qtys[i])
		}
		lines = append(lines, inventory.LineItem{Name: strings.TrimSpace(name), Qty: qty})
	}
	return lines
}

// ValidLines keeps rows with a non-empty name, preserving order.
// A named row with quantity zero stays in: a zero adjustment is the
// backend's call to accept or reject, not ours to drop.
func ValidLines(lines []inventory.LineItem) []inventory.LineItem {
	out := make([]inventory.LineItem, 0, len(lines))
	for _, l := range lines {
		if l.Valid() {
			out = append(out, l)
		}
	}
	return out
}
