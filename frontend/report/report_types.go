package report

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"stockroom/frontend/shared/html"
	"stockroom/inventory"
)

// PageData is the report tab state: the filters as entered, and the
// result set once a query has been run.
type PageData struct {
	Filter inventory.ReportFilter
	Ran    bool

	Rows     []inventory.MovementRow
	TotalIn  decimal.Decimal
	TotalOut decimal.Decimal

	Flash html.Flash
}

// FilterFromQuery reads the report filters from the query string.
func FilterFromQuery(values url.Values) inventory.ReportFilter {
	mt, _ := inventory.ParseMovementType(values.Get("type"))
	return inventory.ReportFilter{
		From:     strings.TrimSpace(values.Get("from")),
		To:       strings.TrimSpace(values.Get("to")),
		Material: strings.TrimSpace(values.Get("material")),
		Type:     mt,
		Project:  strings.TrimSpace(values.Get("project")),
	}
}
