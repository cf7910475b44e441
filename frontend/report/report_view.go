package report

import (
	"context"
	stdhtml "html"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"stockroom/frontend/shared/html"
	"stockroom/inventory"
)

// ReportPage renders the filter form and, after a run, the result
// table with IN/OUT totals.
func ReportPage(data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeFilters(w, data.Filter); err != nil {
			return err
		}
		if data.Ran && len(data.Rows) > 0 {
			if err := writeTable(w, data); err != nil {
				return err
			}
		}
		return html.PickerModal().Render(ctx, w)
	})
	return html.Layout("Movement Report", "report", data.Flash, body)
}

func writeFilters(w io.Writer, f inventory.ReportFilter) error {
	typeOptions := `<option value="">All types</option>`
	for _, t := range []inventory.MovementType{inventory.MovementIn, inventory.MovementOut, inventory.MovementAdjust} {
		selected := ""
		if t == f.Type {
			selected = ` selected`
		}
		typeOptions += `<option` + selected + `>` + string(t) + `</option>`
	}

	_, err := io.WriteString(w, `<h1>Movement Report</h1><form method="GET" action="/app/report" class="filters">`+
		`<input type="hidden" name="run" value="1">`+
		`<label>From<input type="date" name="from" value="`+stdhtml.EscapeString(f.From)+`"></label>`+
		`<label>To<input type="date" name="to" value="`+stdhtml.EscapeString(f.To)+`"></label>`+
		`<label>Material<input type="text" name="material" value="`+stdhtml.EscapeString(f.Material)+`" readonly onclick="openPicker(this, 'materials')" placeholder="All materials"></label>`+
		`<label>Type<select name="type">`+typeOptions+`</select></label>`+
		`<label>Project<input type="text" name="project" value="`+stdhtml.EscapeString(f.Project)+`" readonly onclick="openPicker(this, 'projects')" placeholder="All projects"></label>`+
		`<button type="submit" class="btn btn-primary">Run</button>`+
		`</form>`)
	return err
}

func writeTable(w io.Writer, data PageData) error {
	if _, err := io.WriteString(w, `<table class="report"><thead><tr>`+
		`<th>Doc</th><th>Date</th><th>Type</th><th>Material</th><th>Qty</th><th>Project</th><th>Contractor</th><th>Requester</th>`+
		`</tr></thead><tbody>`); err != nil {
		return err
	}
	for _, row := range data.Rows {
		if _, err := io.WriteString(w, `<tr>`+
			`<td>`+stdhtml.EscapeString(row.DocNo)+`</td>`+
			`<td>`+stdhtml.EscapeString(row.Date)+`</td>`+
			`<td>`+string(row.Type)+`</td>`+
			`<td>`+stdhtml.EscapeString(row.Material)+`</td>`+
			`<td>`+row.Qty.String()+`</td>`+
			`<td>`+stdhtml.EscapeString(row.Project)+`</td>`+
			`<td>`+stdhtml.EscapeString(row.Contractor)+`</td>`+
			`<td>`+stdhtml.EscapeString(row.Requester)+`</td>`+
			`</tr>`); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</tbody><tfoot><tr>`+
		`<td colspan="4">Totals</td>`+
		`<td>IN `+data.TotalIn.String()+` / OUT `+data.TotalOut.String()+`</td>`+
		`<td colspan="3"></td></tr></tfoot></table>`); err != nil {
		return err
	}

	query := url.Values{}
	query.Set("from", data.Filter.From)
	query.Set("to", data.Filter.To)
	query.Set("material", data.Filter.Material)
	query.Set("type", string(data.Filter.Type))
	query.Set("project", data.Filter.Project)
	_, err := io.WriteString(w, `<a class="btn" href="/app/report/export.xlsx?`+query.Encode()+`">Download XLSX</a>`)
	return err
}
