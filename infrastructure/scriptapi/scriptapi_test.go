package scriptapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"stockroom/infrastructure/gateway"
	"stockroom/inventory"
)

// scriptStub answers gateway calls per operation name, recording the
// payloads it saw.
type scriptStub struct {
	mu       sync.Mutex
	replies  map[string]string
	statuses map[string]int
	payloads map[string]json.RawMessage
}

func newStub() *scriptStub {
	return &scriptStub{
		replies:  map[string]string{},
		statuses: map[string]int{},
		payloads: map[string]json.RawMessage{},
	}
}

func (s *scriptStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Op      string          `json:"op"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.payloads[body.Op] = body.Payload
		reply, ok := s.replies[body.Op]
		status := s.statuses[body.Op]
		s.mu.Unlock()

		if status != 0 {
			w.WriteHeader(status)
			return
		}
		if !ok {
			http.Error(w, "unknown op "+body.Op, http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(reply))
	}
}

func newTestBackend(t *testing.T, stub *scriptStub) *Backend {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)
	return New(gateway.New(gateway.Config{
		BaseURL:   srv.URL,
		RetryBase: time.Millisecond,
	}))
}

func TestLookups_FetchesAllFourListsSorted(t *testing.T) {
	stub := newStub()
	stub.replies["listMaterials"] = `{"result": [{"name":"sand","stock":"7","min":"2"},{"name":"Cement","stock":"40","min":"10"}]}`
	stub.replies["listProjects"] = `{"result": ["Yard paving","Office refit"]}`
	stub.replies["listContractors"] = `{"result": ["Hansen Bygg"]}`
	stub.replies["listRequesters"] = `{"result": []}`

	backend := newTestBackend(t, stub)
	lookups, err := backend.Lookups(context.Background())
	if err != nil {
		t.Fatalf("lookups: %v", err)
	}

	mats := lookups[inventory.CategoryMaterials]
	if len(mats) != 2 || mats[0].Name != "Cement" || mats[1].Name != "sand" {
		t.Fatalf("materials not sorted case-insensitively: %v", mats)
	}
	if !mats[0].HasStock || mats[0].Stock.String() != "40" {
		t.Fatalf("material entries must carry stock: %+v", mats[0])
	}

	projects := lookups[inventory.CategoryProjects]
	if len(projects) != 2 || projects[0].Name != "Office refit" {
		t.Fatalf("projects not sorted: %v", projects)
	}
	if projects[0].HasStock {
		t.Fatalf("name lists must not claim stock")
	}
	if got := lookups[inventory.CategoryRequesters]; got == nil || len(got) != 0 {
		t.Fatalf("empty category must be an empty list, got %v", got)
	}
}

func TestLookups_AnyFailureAbortsWholeFetch(t *testing.T) {
	stub := newStub()
	stub.replies["listMaterials"] = `{"result": []}`
	stub.replies["listProjects"] = `{"result": []}`
	stub.replies["listContractors"] = `{"result": []}`
	stub.statuses["listRequesters"] = http.StatusBadRequest

	backend := newTestBackend(t, stub)
	if _, err := backend.Lookups(context.Background()); err == nil {
		t.Fatalf("one failed list must fail the whole fetch")
	}
}

func TestSubmitMovements_SendsBatchAndReadsDocNo(t *testing.T) {
	stub := newStub()
	stub.replies["submitMovementBulk"] = `{"result": {"docNo": "OUT-000042"}}`

	backend := newTestBackend(t, stub)
	res, err := backend.SubmitMovements(context.Background(), inventory.MovementBatch{
		Type: inventory.MovementOut,
		Date: "2026-08-29",
		Lines: []inventory.LineItem{
			{Name: "Cement"},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.DocNo != "OUT-000042" {
		t.Fatalf("docNo = %q", res.DocNo)
	}

	var sent inventory.MovementBatch
	if err := json.Unmarshal(stub.payloads["submitMovementBulk"], &sent); err != nil {
		t.Fatalf("decode sent payload: %v", err)
	}
	if sent.Type != inventory.MovementOut || len(sent.Lines) != 1 {
		t.Fatalf("unexpected payload %+v", sent)
	}
}

func TestSetPurchaseStatus_RejectionPassesThrough(t *testing.T) {
	stub := newStub()
	stub.replies["pur_SetStatus"] = `{"ok": false, "message": "cannot move PR-000007 from Received to Cancelled"}`

	backend := newTestBackend(t, stub)
	err := backend.SetPurchaseStatus(context.Background(), "PR-000007", inventory.StatusCancelled)
	msg, ok := inventory.RejectionMessage(err)
	if !ok || msg != "cannot move PR-000007 from Received to Cancelled" {
		t.Fatalf("expected verbatim rejection, got %v", err)
	}

	var sent map[string]string
	if err := json.Unmarshal(stub.payloads["pur_SetStatus"], &sent); err != nil {
		t.Fatalf("decode sent payload: %v", err)
	}
	if sent["docNo"] != "PR-000007" || sent["status"] != "Cancelled" {
		t.Fatalf("unexpected payload %v", sent)
	}
}

func TestPurchasePipeline_DecodesStatusCounts(t *testing.T) {
	stub := newStub()
	stub.replies["pur_Summary"] = `{"result": [{"status":"Requested","docs":3},{"status":"Received","docs":1}]}`

	backend := newTestBackend(t, stub)
	pipeline, err := backend.PurchasePipeline(context.Background())
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if len(pipeline) != 2 {
		t.Fatalf("expected 2 slices, got %+v", pipeline)
	}
	if pipeline[0].Status != inventory.StatusRequested || pipeline[0].Docs != 3 {
		t.Fatalf("unexpected first slice %+v", pipeline[0])
	}
	if pipeline[1].Status != inventory.StatusReceived || pipeline[1].Docs != 1 {
		t.Fatalf("unexpected second slice %+v", pipeline[1])
	}
}

func TestCurrentStock_DecodesLevel(t *testing.T) {
	stub := newStub()
	stub.replies["getCurrentStock"] = `{"result": {"stock": "3.5", "min": "5"}}`

	backend := newTestBackend(t, stub)
	level, err := backend.CurrentStock(context.Background(), "Cement")
	if err != nil {
		t.Fatalf("current stock: %v", err)
	}
	if level.Stock.String() != "3.5" || level.Min.String() != "5" {
		t.Fatalf("unexpected level %+v", level)
	}
}

func TestMovementReport_SendsFilter(t *testing.T) {
	stub := newStub()
	stub.replies["getMovementReport"] = `{"result": [{"docNo":"IN-000001","date":"2026-08-01","type":"IN","material":"Cement","qty":"10"}]}`

	backend := newTestBackend(t, stub)
	rows, err := backend.MovementReport(context.Background(), inventory.ReportFilter{
		From: "2026-08-01", To: "2026-08-31", Type: inventory.MovementIn,
	})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rows) != 1 || rows[0].DocNo != "IN-000001" || rows[0].Qty.String() != "10" {
		t.Fatalf("unexpected rows %v", rows)
	}

	var sent map[string]string
	if err := json.Unmarshal(stub.payloads["getMovementReport"], &sent); err != nil {
		t.Fatalf("decode sent payload: %v", err)
	}
	if sent["from"] != "2026-08-01" || sent["type"] != "IN" {
		t.Fatalf("unexpected filter payload %v", sent)
	}
}
