package purchase

import (
	stdcontext "context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"stockroom/inventory"
)

type fakeBackend struct {
	inventory.Backend

	submitted  []inventory.PurchaseRequest
	submitErr  error
	docNo      string
	history    []inventory.PurchaseSummary
	historyErr error

	statusDoc string
	statusSet inventory.PurchaseStatus
	statusErr error
}

func (f *fakeBackend) SubmitPurchase(_ stdcontext.Context, req inventory.PurchaseRequest) (inventory.SubmitResult, error) {
	if f.submitErr != nil {
		return inventory.SubmitResult{}, f.submitErr
	}
	f.submitted = append(f.submitted, req)
	return inventory.SubmitResult{DocNo: f.docNo}, nil
}

func (f *fakeBackend) PurchaseSummaries(_ stdcontext.Context) ([]inventory.PurchaseSummary, error) {
	return f.history, f.historyErr
}

func (f *fakeBackend) SetPurchaseStatus(_ stdcontext.Context, docNo string, status inventory.PurchaseStatus) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statusDoc = docNo
	f.statusSet = status
	return nil
}

func newFormRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func withDocNo(req *http.Request, docNo string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("docNo", docNo)
	return req.WithContext(stdcontext.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestSubmitPurchase_SuccessRedirectsWithDocNo(t *testing.T) {
	backend := &fakeBackend{docNo: "PR-000003"}
	handler := SubmitPurchaseCommandHandler(backend)

	form := url.Values{
		"date":      {"2026-08-29"},
		"need_by":   {"2026-09-15"},
		"priority":  {"High"},
		"project":   {"Warehouse B extension"},
		"requester": {"K. Berg"},
		"line_name": {"Rebar 12mm (pc)"},
		"line_qty":  {"200"},
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newFormRequest("/app/purchase", form))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	loc, _ := url.QueryUnescape(rr.Header().Get("Location"))
	if !strings.Contains(loc, "Requested PR-000003") {
		t.Fatalf("expected doc number in toast, got %q", loc)
	}

	if len(backend.submitted) != 1 {
		t.Fatalf("expected one submission")
	}
	req := backend.submitted[0]
	if req.NeedBy != "2026-09-15" || req.Priority != "High" {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestSubmitPurchase_NoValidLinesKeepsHistoryVisible(t *testing.T) {
	backend := &fakeBackend{
		history: []inventory.PurchaseSummary{{DocNo: "PR-000001", Status: inventory.StatusRequested, LineCount: 2}},
	}
	handler := SubmitPurchaseCommandHandler(backend)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newFormRequest("/app/purchase", url.Values{"line_name": {""}}))

	if len(backend.submitted) != 0 {
		t.Fatalf("backend must not be called without a named line")
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Add at least one line") {
		t.Fatalf("expected validation message")
	}
	if !strings.Contains(body, "PR-000001") {
		t.Fatalf("history must still render on a failed submit")
	}
}

func TestPurchaseStatusCommandHandler(t *testing.T) {
	backend := &fakeBackend{}
	handler := PurchaseStatusCommandHandler(backend)

	req := withDocNo(newFormRequest("/app/purchase/PR-000002/status", url.Values{"status": {"Approved"}}), "PR-000002")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if backend.statusDoc != "PR-000002" || backend.statusSet != inventory.StatusApproved {
		t.Fatalf("backend saw %s/%s", backend.statusDoc, backend.statusSet)
	}
	loc, _ := url.QueryUnescape(rr.Header().Get("Location"))
	if !strings.Contains(loc, "PR-000002 is now Approved") {
		t.Fatalf("unexpected redirect %q", loc)
	}
}

func TestPurchaseStatusCommandHandler_RejectionRedirectsVerbatim(t *testing.T) {
	backend := &fakeBackend{statusErr: &inventory.RejectedError{Message: "cannot move PR-000002 from Received to Cancelled"}}
	handler := PurchaseStatusCommandHandler(backend)

	req := withDocNo(newFormRequest("/app/purchase/PR-000002/status", url.Values{"status": {"Cancelled"}}), "PR-000002")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	loc, _ := url.QueryUnescape(rr.Header().Get("Location"))
	if !strings.Contains(loc, "cannot move PR-000002 from Received to Cancelled") {
		t.Fatalf("expected verbatim rejection in redirect, got %q", loc)
	}
}

func TestNextStatuses(t *testing.T) {
	got := NextStatuses(inventory.StatusRequested)
	if len(got) != 2 || got[0] != inventory.StatusApproved || got[1] != inventory.StatusCancelled {
		t.Fatalf("from Requested got %v", got)
	}
	if got := NextStatuses(inventory.StatusReceived); len(got) != 0 {
		t.Fatalf("Received is terminal, got %v", got)
	}
	if got := NextStatuses(inventory.StatusCancelled); len(got) != 0 {
		t.Fatalf("Cancelled is terminal, got %v", got)
	}
}
