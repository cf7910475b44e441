package movements

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stockroom/frontend/shared/forms"
	"stockroom/frontend/shared/html"
	"stockroom/inventory"
)

func today() string {
	return time.Now().Format("2006-01-02")
}

// MovementPageQueryHandler renders the tab's form: header fields, one
// empty line row, and the picker modal.
func MovementPageQueryHandler(tab TabConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{
			Tab:  tab,
			Date: today(),
			Flash: html.Flash{
				Status: r.URL.Query().Get("status"),
				Error:  r.URL.Query().Get("error"),
			},
		}
		renderPage(w, r, data)
	}
}

// SubmitMovementCommandHandler validates and submits the form. A batch
// with no named line never reaches the backend. Success redirects to a
// fresh form with the assigned document number in the toast; any
// failure re-renders the entered state so the user can retry.
func SubmitMovementCommandHandler(backend inventory.Backend, tab TabConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/app/"+tab.Key+"?error="+url.QueryEscape("Invalid form"), http.StatusSeeOther)
			return
		}

		data := PageData{
			Tab:        tab,
			Date:       strings.TrimSpace(r.FormValue("date")),
			Project:    strings.TrimSpace(r.FormValue("project")),
			Contractor: strings.TrimSpace(r.FormValue("contractor")),
			Requester:  strings.TrimSpace(r.FormValue("requester")),
			Note:       strings.TrimSpace(r.FormValue("note")),
			Lines:      forms.ParseLines(r.Form),
		}
		if data.Date == "" {
			data.Date = today()
		}

		valid := forms.ValidLines(data.Lines)
		if len(valid) == 0 {
			data.Flash.Error = "Add at least one line"
			renderPage(w, r, data)
			return
		}

		batch := inventory.MovementBatch{
			Type:       tab.Type,
			Date:       data.Date,
			Project:    data.Project,
			Contractor: data.Contractor,
			Requester:  data.Requester,
			Note:       data.Note,
			Lines:      valid,
		}
		result, err := backend.SubmitMovements(r.Context(), batch)
		if err != nil {
			slog.Error("movement submit failed", slog.String("type", string(tab.Type)), slog.Any("err", err))
			data.Flash.Error = "Could not save, please try again"
			if msg, ok := inventory.RejectionMessage(err); ok {
				data.Flash.Error = msg
			}
			renderPage(w, r, data)
			return
		}

		status := "Saved " + result.DocNo
		http.Redirect(w, r, "/app/"+tab.Key+"?status="+url.QueryEscape(status), http.StatusSeeOther)
	}
}

func renderPage(w http.ResponseWriter, r *http.Request, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := MovementPage(data).Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render movement page", http.StatusInternalServerError)
	}
}

type stockResponse struct {
	Stock string               `json:"stock"`
	Min   string               `json:"min"`
	Level inventory.BadgeLevel `json:"level"`
}

// StockLevelQueryHandler feeds the per-row badge on the OUT tab. The
// row's lookup is fire-and-forget: any error here just leaves the
// badge as it was.
func StockLevelQueryHandler(backend inventory.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		level, err := backend.CurrentStock(r.Context(), name)
		if err != nil {
			http.Error(w, "stock lookup failed", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stockResponse{
			Stock: level.Stock.String(),
			Min:   level.Min.String(),
			Level: inventory.BadgeFor(level.Stock, level.Min),
		})
	}
}
