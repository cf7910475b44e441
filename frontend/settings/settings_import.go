package settings

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"stockroom/frontend/shared/forms"
	"stockroom/inventory"
)

// ImportSummary reports a material CSV import run.
type ImportSummary struct {
	Inserted int
	Updated  int
	Errors   int
}

// ImportMaterialsCSV upserts materials from a name,stock,min CSV.
// Existing names are counted as updates; their levels are overwritten.
// Bad rows are counted and skipped, they never abort the run.
func ImportMaterialsCSV(ctx context.Context, backend inventory.Backend, reader io.Reader) (ImportSummary, error) {
	summary := ImportSummary{}
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return summary, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 3 ||
		!strings.EqualFold(strings.TrimSpace(header[0]), "name") ||
		!strings.EqualFold(strings.TrimSpace(header[1]), "stock") ||
		!strings.EqualFold(strings.TrimSpace(header[2]), "min") {
		return summary, fmt.Errorf("invalid CSV header; expected name,stock,min")
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			summary.Errors++
			continue
		}
		if len(record) < 3 {
			summary.Errors++
			continue
		}
		name := strings.TrimSpace(record[0])
		if name == "" {
			summary.Errors++
			continue
		}

		level := inventory.StockLevel{
			Stock: forms.ParseQty(record[1]),
			Min:   forms.ParseQty(record[2]),
		}

		switch err := backend.AddEntry(ctx, inventory.CategoryMaterials, name); {
		case err == nil:
			summary.Inserted++
		case isAlreadyExists(err):
			summary.Updated++
		default:
			summary.Errors++
			continue
		}

		if err := backend.SetMaterialLevels(ctx, name, level); err != nil {
			summary.Errors++
		}
	}
	return summary, nil
}

func isAlreadyExists(err error) bool {
	var rej *inventory.RejectedError
	return errors.As(err, &rej) && strings.Contains(rej.Message, "already exists")
}
