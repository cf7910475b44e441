package documents

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stockroom/inventory"
)

func TestRenderMovementPDF_GeneratesPDF(t *testing.T) {
	t.Parallel()

	doc := inventory.MovementBatch{
		Type:       inventory.MovementOut,
		Date:       "2026-08-28",
		Project:    "Office refit",
		Contractor: "Delta Interiors",
		Requester:  "S. Tanaka",
		Note:       "third floor fit-out",
		Lines: []inventory.LineItem{
			{Name: "Paint, white (L)", Qty: decimal.NewFromInt(6)},
			{Name: "Plywood 18mm (sheet)", Qty: decimal.NewFromInt(4)},
		},
	}

	pdf, err := renderMovementPDF("OUT-000009", doc, time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("renderMovementPDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("expected non-empty pdf bytes")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected a PDF header, got %q", pdf[:8])
	}
}

func TestRenderMovementPDF_EmptyLines(t *testing.T) {
	t.Parallel()

	doc := inventory.MovementBatch{Type: inventory.MovementIn, Date: "2026-08-01"}
	pdf, err := renderMovementPDF("IN-000001", doc, time.Now())
	if err != nil {
		t.Fatalf("renderMovementPDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("expected non-empty pdf bytes")
	}
}

func TestRenderCode128PNG(t *testing.T) {
	t.Parallel()

	png, err := renderCode128PNG("OUT-000009", 320, 60)
	if err != nil {
		t.Fatalf("renderCode128PNG returned error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("expected a PNG header")
	}
}
