package settings

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"stockroom/frontend/lookup"
	"stockroom/frontend/shared/forms"
	"stockroom/frontend/shared/html"
	"stockroom/inventory"
)

// SettingsPageQueryHandler lists the four master-data categories.
func SettingsPageQueryHandler(backend inventory.Backend, store *lookup.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{
			Flash: html.Flash{
				Status: r.URL.Query().Get("status"),
				Error:  r.URL.Query().Get("error"),
			},
		}

		materials, err := backend.Materials(r.Context())
		if err != nil {
			slog.Error("settings materials load failed", slog.Any("err", err))
			data.Flash.Error = "Could not load master data"
		} else {
			data.Materials = materials
			_ = store.Refresh(r.Context(), false)
			data.Projects = names(store.Get(inventory.CategoryProjects))
			data.Contractors = names(store.Get(inventory.CategoryContractors))
			data.Requesters = names(store.Get(inventory.CategoryRequesters))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := SettingsPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render settings page", http.StatusInternalServerError)
		}
	}
}

// AddEntryCommandHandler creates a master-data entry in any category.
func AddEntryCommandHandler(backend inventory.Backend, store *lookup.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := inventory.ParseCategory(chi.URLParam(r, "category"))
		if err != nil {
			http.Error(w, "unknown category", http.StatusNotFound)
			return
		}
		if err := r.ParseForm(); err != nil {
			redirect(w, r, "error", "Invalid form")
			return
		}
		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			redirect(w, r, "error", "Name is required")
			return
		}

		if err := backend.AddEntry(r.Context(), category, name); err != nil {
			msg := "Could not add entry"
			if verbatim, ok := inventory.RejectionMessage(err); ok {
				msg = verbatim
			}
			redirect(w, r, "error", msg)
			return
		}

		if category == inventory.CategoryMaterials {
			level := inventory.StockLevel{
				Stock: forms.ParseQty(r.FormValue("stock")),
				Min:   forms.ParseQty(r.FormValue("min")),
			}
			if err := backend.SetMaterialLevels(r.Context(), name, level); err != nil {
				slog.Error("set material levels failed", slog.String("name", name), slog.Any("err", err))
				// The entry exists at this point, only the levels
				// were lost. Say so instead of claiming full success.
				store.Invalidate()
				redirect(w, r, "error", fmt.Sprintf("Added %q but could not save its stock levels", name))
				return
			}
		}

		store.Invalidate()
		redirect(w, r, "status", fmt.Sprintf("Added %q", name))
	}
}

// DeleteEntryCommandHandler removes a master-data entry. The form must
// carry confirm=yes; the page asks before posting.
func DeleteEntryCommandHandler(backend inventory.Backend, store *lookup.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := inventory.ParseCategory(chi.URLParam(r, "category"))
		if err != nil {
			http.Error(w, "unknown category", http.StatusNotFound)
			return
		}
		if err := r.ParseForm(); err != nil {
			redirect(w, r, "error", "Invalid form")
			return
		}
		if r.FormValue("confirm") != "yes" {
			redirect(w, r, "error", "Deletion was not confirmed")
			return
		}
		name := strings.TrimSpace(r.FormValue("name"))

		if err := backend.DeleteEntry(r.Context(), category, name); err != nil {
			msg := "Could not delete entry"
			if verbatim, ok := inventory.RejectionMessage(err); ok {
				msg = verbatim
			}
			redirect(w, r, "error", msg)
			return
		}

		store.Invalidate()
		redirect(w, r, "status", fmt.Sprintf("Deleted %q", name))
	}
}

// UpdateMaterialLevelsCommandHandler edits one material's stock/min.
func UpdateMaterialLevelsCommandHandler(backend inventory.Backend, store *lookup.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirect(w, r, "error", "Invalid form")
			return
		}
		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			redirect(w, r, "error", "Name is required")
			return
		}
		level := inventory.StockLevel{
			Stock: forms.ParseQty(r.FormValue("stock")),
			Min:   forms.ParseQty(r.FormValue("min")),
		}

		if err := backend.SetMaterialLevels(r.Context(), name, level); err != nil {
			msg := "Could not update levels"
			if verbatim, ok := inventory.RejectionMessage(err); ok {
				msg = verbatim
			}
			redirect(w, r, "error", msg)
			return
		}

		store.Invalidate()
		redirect(w, r, "status", fmt.Sprintf("Updated %q", name))
	}
}

// ImportMaterialsCommandHandler uploads a name,stock,min CSV.
func ImportMaterialsCommandHandler(backend inventory.Backend, store *lookup.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			redirect(w, r, "error", "Invalid upload")
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			redirect(w, r, "error", "File is required")
			return
		}
		defer file.Close()

		summary, err := ImportMaterialsCSV(r.Context(), backend, file)
		if err != nil {
			redirect(w, r, "error", "Import failed: "+err.Error())
			return
		}

		store.Invalidate()
		redirect(w, r, "status", fmt.Sprintf("Imported: %d inserted, %d updated, %d errors",
			summary.Inserted, summary.Updated, summary.Errors))
	}
}

func redirect(w http.ResponseWriter, r *http.Request, kind, msg string) {
	http.Redirect(w, r, "/app/settings?"+kind+"="+url.QueryEscape(msg), http.StatusSeeOther)
}

func names(entries []inventory.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}
