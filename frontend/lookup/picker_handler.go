package lookup

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"stockroom/inventory"
)

type searchResponse struct {
	Entries  []inventory.Entry `json:"entries"`
	QuickAdd bool              `json:"quickAdd"`
}

// PickerSearchHandler serves the filtered entries the picker modal
// renders. QuickAdd is set when the category supports inline creation
// and the query found nothing.
func PickerSearchHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := inventory.ParseCategory(chi.URLParam(r, "category"))
		if err != nil {
			http.Error(w, "unknown category", http.StatusNotFound)
			return
		}
		// Best effort: a failed refresh still serves the previous cache.
		_ = store.Refresh(r.Context(), false)

		q := r.URL.Query().Get("q")
		entries := Filter(store.Get(category), q)

		resp := searchResponse{
			Entries:  entries,
			QuickAdd: category.QuickAddAllowed() && len(entries) == 0 && strings.TrimSpace(q) != "",
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type addResponse struct {
	Ok      bool   `json:"ok"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
}

// PickerAddHandler creates a lookup entry from the picker's quick-add
// affordance. Only contractors and requesters allow it.
func PickerAddHandler(backend inventory.Backend, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := inventory.ParseCategory(chi.URLParam(r, "category"))
		if err != nil {
			http.Error(w, "unknown category", http.StatusNotFound)
			return
		}
		if !category.QuickAddAllowed() {
			writeAddResponse(w, http.StatusForbidden, addResponse{Ok: false, Message: "this list cannot be extended from the picker"})
			return
		}
		if err := r.ParseForm(); err != nil {
			writeAddResponse(w, http.StatusBadRequest, addResponse{Ok: false, Message: "invalid form"})
			return
		}
		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			writeAddResponse(w, http.StatusBadRequest, addResponse{Ok: false, Message: "name is required"})
			return
		}

		if err := backend.AddEntry(r.Context(), category, name); err != nil {
			msg := "could not add entry"
			if verbatim, ok := inventory.RejectionMessage(err); ok {
				msg = verbatim
			}
			writeAddResponse(w, http.StatusOK, addResponse{Ok: false, Message: msg})
			return
		}

		store.Invalidate()
		_ = store.Refresh(r.Context(), true)
		writeAddResponse(w, http.StatusOK, addResponse{Ok: true, Name: name})
	}
}

func writeAddResponse(w http.ResponseWriter, code int, resp addResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
