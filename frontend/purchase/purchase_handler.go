package purchase

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"stockroom/frontend/shared/forms"
	"stockroom/frontend/shared/html"
	"stockroom/inventory"
)

func today() string {
	return time.Now().Format("2006-01-02")
}

// PurchasePageQueryHandler renders the request form and reloads the
// history list. A history fetch failure still shows the form.
func PurchasePageQueryHandler(backend inventory.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{
			Date:     today(),
			Priority: "Normal",
			Flash: html.Flash{
				Status: r.URL.Query().Get("status"),
				Error:  r.URL.Query().Get("error"),
			},
		}
		history, err := backend.PurchaseSummaries(r.Context())
		if err != nil {
			slog.Error("purchase history load failed", slog.Any("err", err))
			if data.Flash.Error == "" {
				data.Flash.Error = "Could not load purchase history"
			}
		} else {
			data.History = history
		}
		renderPage(w, r, data)
	}
}

// SubmitPurchaseCommandHandler validates and submits a purchase
// request; the line rules are identical to the movement tabs.
func SubmitPurchaseCommandHandler(backend inventory.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/app/purchase?error="+url.QueryEscape("Invalid form"), http.StatusSeeOther)
			return
		}

		data := PageData{
			Date:       strings.TrimSpace(r.FormValue("date")),
			NeedBy:     strings.TrimSpace(r.FormValue("need_by")),
			Priority:   strings.TrimSpace(r.FormValue("priority")),
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
			reloadHistory(r, backend, &data)
			renderPage(w, r, data)
			return
		}

		req := inventory.PurchaseRequest{
			Date:       data.Date,
			NeedBy:     data.NeedBy,
			Priority:   data.Priority,
			Project:    data.Project,
			Contractor: data.Contractor,
			Requester:  data.Requester,
			Note:       data.Note,
			Lines:      valid,
		}
		result, err := backend.SubmitPurchase(r.Context(), req)
		if err != nil {
			slog.Error("purchase submit failed", slog.Any("err", err))
			data.Flash.Error = "Could not save, please try again"
			if msg, ok := inventory.RejectionMessage(err); ok {
				data.Flash.Error = msg
			}
			reloadHistory(r, backend, &data)
			renderPage(w, r, data)
			return
		}

		http.Redirect(w, r, "/app/purchase?status="+url.QueryEscape("Requested "+result.DocNo), http.StatusSeeOther)
	}
}

// PurchaseLinesQueryHandler serves one request's lines for the
// history list's expand control. Lines are fetched lazily per
// expansion, never pre-joined into the summary query.
func PurchaseLinesQueryHandler(backend inventory.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docNo := chi.URLParam(r, "docNo")
		lines, err := backend.PurchaseLines(r.Context(), docNo)
		if err != nil {
			http.Error(w, "failed to load purchase lines", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(lines)
	}
}

// PurchaseStatusCommandHandler advances a request along its lifecycle.
func PurchaseStatusCommandHandler(backend inventory.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docNo := chi.URLParam(r, "docNo")
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/app/purchase?error="+url.QueryEscape("Invalid form"), http.StatusSeeOther)
			return
		}
		status := inventory.PurchaseStatus(strings.TrimSpace(r.FormValue("status")))

		if err := backend.SetPurchaseStatus(r.Context(), docNo, status); err != nil {
			msg := "Could not update status"
			if verbatim, ok := inventory.RejectionMessage(err); ok {
				msg = verbatim
			}
			http.Redirect(w, r, "/app/purchase?error="+url.QueryEscape(msg), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/app/purchase?status="+url.QueryEscape(docNo+" is now "+string(status)), http.StatusSeeOther)
	}
}

func reloadHistory(r *http.Request, backend inventory.Backend, data *PageData) {
	history, err := backend.PurchaseSummaries(r.Context())
	if err != nil {
		slog.Error("purchase history load failed", slog.Any("err", err))
		return
	}
	data.History = history
}

func renderPage(w http.ResponseWriter, r *http.Request, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := PurchasePage(data).Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render purchase page", http.StatusInternalServerError)
	}
}
