package lookup

import (
	stdcontext "context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"stockroom/inventory"
)

func newPickerRequest(method, target, category string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("category", category)
	return req.WithContext(stdcontext.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeSearch(t *testing.T, rr *httptest.ResponseRecorder) searchResponse {
	t.Helper()
	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode search response: %v", err)
	}
	return resp
}

func TestPickerSearchHandler_FiltersByTokens(t *testing.T) {
	backend := &fakeBackend{lookups: inventory.Lookups{
		inventory.CategoryMaterials: {
			{Name: "Cement 42.5 (bag)"},
			{Name: "Sand (m3)"},
			{Name: "White cement (bag)"},
		},
	}}
	handler := PickerSearchHandler(NewStore(backend))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newPickerRequest(http.MethodGet, "/app/api/picker/materials?q=cem+bag", "materials", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	resp := decodeSearch(t, rr)
	if len(resp.Entries) != 2 {
		t.Fatalf("expected 2 matches, got %v", resp.Entries)
	}
	if resp.Entries[0].Name != "Cement 42.5 (bag)" || resp.Entries[1].Name != "White cement (bag)" {
		t.Fatalf("unexpected matches: %v", resp.Entries)
	}
	if resp.QuickAdd {
		t.Fatalf("materials must never offer quick-add")
	}
}

func TestPickerSearchHandler_QuickAddOnlyForEmptyExtendableResult(t *testing.T) {
	backend := &fakeBackend{lookups: inventory.Lookups{
		inventory.CategoryContractors: {{Name: "Hansen Bygg"}},
		inventory.CategoryMaterials:   {{Name: "Cement"}},
	}}
	store := NewStore(backend)

	// Contractors with no match: quick-add offered.
	rr := httptest.NewRecorder()
	PickerSearchHandler(store).ServeHTTP(rr, newPickerRequest(http.MethodGet, "/app/api/picker/contractors?q=okafor", "contractors", nil))
	if resp := decodeSearch(t, rr); !resp.QuickAdd {
		t.Fatalf("expected quick-add for unmatched contractor query")
	}

	// Contractors with a match: no quick-add.
	rr = httptest.NewRecorder()
	PickerSearchHandler(store).ServeHTTP(rr, newPickerRequest(http.MethodGet, "/app/api/picker/contractors?q=hansen", "contractors", nil))
	if resp := decodeSearch(t, rr); resp.QuickAdd {
		t.Fatalf("quick-add must not appear next to matches")
	}

	// Blank query never offers quick-add.
	rr = httptest.NewRecorder()
	PickerSearchHandler(store).ServeHTTP(rr, newPickerRequest(http.MethodGet, "/app/api/picker/contractors?q=++", "contractors", nil))
	if resp := decodeSearch(t, rr); resp.QuickAdd {
		t.Fatalf("blank query must not offer quick-add")
	}

	// Materials with no match: category does not allow it.
	rr = httptest.NewRecorder()
	PickerSearchHandler(store).ServeHTTP(rr, newPickerRequest(http.MethodGet, "/app/api/picker/materials?q=nothing", "materials", nil))
	if resp := decodeSearch(t, rr); resp.QuickAdd {
		t.Fatalf("materials must not offer quick-add")
	}
}

func TestPickerSearchHandler_UnknownCategoryIs404(t *testing.T) {
	handler := PickerSearchHandler(NewStore(&fakeBackend{lookups: lookupsWith()}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newPickerRequest(http.MethodGet, "/app/api/picker/gadgets", "gadgets", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestPickerAddHandler_AddsAndRefreshes(t *testing.T) {
	backend := &fakeBackend{lookups: inventory.Lookups{
		inventory.CategoryContractors: {},
	}}
	store := NewStore(backend)
	handler := PickerAddHandler(backend, store)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newPickerRequest(http.MethodPost, "/app/api/picker/contractors", "contractors", url.Values{"name": {"  M. Okafor  "}}))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp addResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode add response: %v", err)
	}
	if !resp.Ok || resp.Name != "M. Okafor" {
		t.Fatalf("expected trimmed name, got %+v", resp)
	}
	if backend.addedCat != inventory.CategoryContractors || backend.addedName != "M. Okafor" {
		t.Fatalf("backend saw %s/%q", backend.addedCat, backend.addedName)
	}

	got := store.Get(inventory.CategoryContractors)
	if len(got) != 1 || got[0].Name != "M. Okafor" {
		t.Fatalf("cache must see the new entry, got %v", got)
	}
}

func TestPickerAddHandler_RejectionMessageVerbatim(t *testing.T) {
	backend := &fakeBackend{
		lookups: inventory.Lookups{inventory.CategoryRequesters: {}},
		addErr:  &inventory.RejectedError{Message: "K. Berg already exists"},
	}
	handler := PickerAddHandler(backend, NewStore(backend))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newPickerRequest(http.MethodPost, "/app/api/picker/requesters", "requesters", url.Values{"name": {"K. Berg"}}))

	var resp addResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode add response: %v", err)
	}
	if resp.Ok || resp.Message != "K. Berg already exists" {
		t.Fatalf("expected verbatim rejection, got %+v", resp)
	}
}

func TestPickerAddHandler_DisallowedCategory(t *testing.T) {
	backend := &fakeBackend{lookups: lookupsWith("Cement")}
	handler := PickerAddHandler(backend, NewStore(backend))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newPickerRequest(http.MethodPost, "/app/api/picker/materials", "materials", url.Values{"name": {"Lime"}}))

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if len(backend.added) != 0 {
		t.Fatalf("backend must not be called for a disallowed category")
	}
}
