package report

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"

	"stockroom/inventory"
)

func row(mt inventory.MovementType, qty string) inventory.MovementRow {
	return inventory.MovementRow{Type: mt, Qty: decimal.RequireFromString(qty)}
}

func TestTotals(t *testing.T) {
	rows := []inventory.MovementRow{
		row(inventory.MovementIn, "10"),
		row(inventory.MovementIn, "2.5"),
		row(inventory.MovementOut, "4"),
		row(inventory.MovementAdjust, "100"),
		row(inventory.MovementAdjust, "-50"),
		row(inventory.MovementOut, "1"),
	}

	totalIn, totalOut := Totals(rows)
	if !totalIn.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("total in = %s, want 12.5", totalIn)
	}
	if !totalOut.Equal(decimal.RequireFromString("5")) {
		t.Fatalf("total out = %s, want 5", totalOut)
	}
}

func TestTotals_Empty(t *testing.T) {
	totalIn, totalOut := Totals(nil)
	if !totalIn.IsZero() || !totalOut.IsZero() {
		t.Fatalf("empty rows must total zero, got %s/%s", totalIn, totalOut)
	}
}

func TestFilterFromQuery(t *testing.T) {
	f := FilterFromQuery(url.Values{
		"from":     {" 2026-08-01 "},
		"to":       {"2026-08-31"},
		"material": {"Cement"},
		"type":     {"OUT"},
		"project":  {"Office refit"},
	})
	if f.From != "2026-08-01" || f.To != "2026-08-31" {
		t.Fatalf("dates not trimmed: %+v", f)
	}
	if f.Type != inventory.MovementOut || f.Material != "Cement" || f.Project != "Office refit" {
		t.Fatalf("unexpected filter %+v", f)
	}

	f = FilterFromQuery(url.Values{"type": {"bogus"}})
	if f.Type != "" {
		t.Fatalf("unknown type must read as all types, got %q", f.Type)
	}
}
