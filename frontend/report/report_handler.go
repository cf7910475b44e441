package report

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"stockroom/frontend/shared/html"
	"stockroom/inventory"
)

// ReportPageQueryHandler renders the filter form; with run=1 it also
// issues the query. Zero rows is not an error: the page says so
// instead of flashing an empty table.
func ReportPageQueryHandler(backend inventory.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{
			Filter: FilterFromQuery(r.URL.Query()),
			Flash: html.Flash{
				Status: r.URL.Query().Get("status"),
				Error:  r.URL.Query().Get("error"),
			},
		}

		if r.URL.Query().Get("run") == "1" {
			rows, err := backend.MovementReport(r.Context(), data.Filter)
			if err != nil {
				slog.Error("movement report failed", slog.Any("err", err))
				data.Flash.Error = "Could not load report"
			} else {
				data.Ran = true
				data.Rows = rows
				data.TotalIn, data.TotalOut = Totals(rows)
				if len(rows) == 0 && data.Flash.Status == "" {
					data.Flash.Status = "No data for the selected filters"
				}
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ReportPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render report page", http.StatusInternalServerError)
		}
	}
}

// ReportExportXLSXHandler downloads the current result set as a
// spreadsheet, with the IN/OUT totals on the last rows.
func ReportExportXLSXHandler(backend inventory.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := FilterFromQuery(r.URL.Query())
		rows, err := backend.MovementReport(r.Context(), filter)
		if err != nil {
			http.Error(w, "failed to load report", http.StatusInternalServerError)
			return
		}

		f := excelize.NewFile()
		defer func() { _ = f.Close() }()
		sheet := f.GetSheetName(f.GetActiveSheetIndex())

		header := []interface{}{"doc_no", "date", "type", "material", "qty", "project", "contractor", "requester"}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			http.Error(w, "failed to build export", http.StatusInternalServerError)
			return
		}

		rowNum := 2
		for _, row := range rows {
			cells := []interface{}{
				row.DocNo, row.Date, string(row.Type), row.Material,
				row.Qty.String(), row.Project, row.Contractor, row.Requester,
			}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &cells); err != nil {
				http.Error(w, "failed to build export", http.StatusInternalServerError)
				return
			}
			rowNum++
		}

		totalIn, totalOut := Totals(rows)
		totals := []interface{}{"", "", "", "TOTAL IN", totalIn.String(), "TOTAL OUT", totalOut.String(), ""}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum+1), &totals); err != nil {
			http.Error(w, "failed to build export", http.StatusInternalServerError)
			return
		}

		filename := "movement-report-" + time.Now().Format("20060102-150405") + ".xlsx"
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := f.Write(w); err != nil {
			slog.Error("report export write failed", slog.Any("err", err))
		}
	}
}
