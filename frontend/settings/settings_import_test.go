package settings

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"stockroom/inventory"
)

type fakeBackend struct {
	inventory.Backend

	existing map[string]bool
	levels   map[string]inventory.StockLevel
	levelErr map[string]error
}

func newFake(existing ...string) *fakeBackend {
	f := &fakeBackend{
		existing: map[string]bool{},
		levels:   map[string]inventory.StockLevel{},
		levelErr: map[string]error{},
	}
	for _, name := range existing {
		f.existing[name] = true
	}
	return f
}

func (f *fakeBackend) AddEntry(_ context.Context, category inventory.Category, name string) error {
	if category != inventory.CategoryMaterials {
		return fmt.Errorf("unexpected category %s", category)
	}
	if f.existing[name] {
		return &inventory.RejectedError{Message: fmt.Sprintf("%q already exists", name)}
	}
	f.existing[name] = true
	return nil
}

func (f *fakeBackend) SetMaterialLevels(_ context.Context, name string, level inventory.StockLevel) error {
	if err := f.levelErr[name]; err != nil {
		return err
	}
	f.levels[name] = level
	return nil
}

func TestImportMaterialsCSV(t *testing.T) {
	backend := newFake("Sand (m3)")
	csv := strings.Join([]string{
		"name,stock,min",
		"Cement 42.5 (bag),120,40",
		"Sand (m3),18,5",
		",9,1",
		"Gravel 20mm (m3),notanumber,4",
		"short row",
	}, "\n")

	summary, err := ImportMaterialsCSV(context.Background(), backend, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if summary.Inserted != 2 {
		t.Errorf("inserted = %d, want 2", summary.Inserted)
	}
	if summary.Updated != 1 {
		t.Errorf("updated = %d, want 1", summary.Updated)
	}
	if summary.Errors != 2 {
		t.Errorf("errors = %d, want 2", summary.Errors)
	}

	// Existing names get their levels overwritten.
	if got := backend.levels["Sand (m3)"]; got.Stock.String() != "18" || got.Min.String() != "5" {
		t.Errorf("Sand levels = %+v", got)
	}
	// Unparseable numbers coerce to zero rather than dropping the row.
	if got := backend.levels["Gravel 20mm (m3)"]; !got.Stock.IsZero() || got.Min.String() != "4" {
		t.Errorf("Gravel levels = %+v", got)
	}
}

func TestImportMaterialsCSV_RejectsBadHeader(t *testing.T) {
	backend := newFake()
	_, err := ImportMaterialsCSV(context.Background(), backend, strings.NewReader("sku,count\nX,1"))
	if err == nil {
		t.Fatalf("expected header error")
	}
	if len(backend.existing) != 0 {
		t.Fatalf("nothing may be written under a bad header")
	}
}
