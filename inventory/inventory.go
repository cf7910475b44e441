package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category identifies one of the four lookup lists.
type Category string

const (
	CategoryMaterials   Category = "materials"
	CategoryProjects    Category = "projects"
	CategoryContractors Category = "contractors"
	CategoryRequesters  Category = "requesters"
)

// Categories returns all lookup categories in display order.
func Categories() []Category {
	return []Category{CategoryMaterials, CategoryProjects, CategoryContractors, CategoryRequesters}
}

// ParseCategory validates a category string from a route or form value.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.TrimSpace(strings.ToLower(s))) {
	case CategoryMaterials:
		return CategoryMaterials, nil
	case CategoryProjects:
		return CategoryProjects, nil
	case CategoryContractors:
		return CategoryContractors, nil
	case CategoryRequesters:
		return CategoryRequesters, nil
	}
	return "", fmt.Errorf("unknown lookup category %q", s)
}

// QuickAddAllowed reports whether the picker may create new entries
// for the category. Materials and projects are managed in settings only.
func (c Category) QuickAddAllowed() bool {
	return c == CategoryContractors || c == CategoryRequesters
}

// MovementType is the stock-affecting transaction kind.
type MovementType string

const (
	MovementIn     MovementType = "IN"
	MovementOut    MovementType = "OUT"
	MovementAdjust MovementType = "ADJUST"
)

func ParseMovementType(s string) (MovementType, error) {
	switch MovementType(strings.ToUpper(strings.TrimSpace(s))) {
	case MovementIn:
		return MovementIn, nil
	case MovementOut:
		return MovementOut, nil
	case MovementAdjust:
		return MovementAdjust, nil
	}
	return "", fmt.Errorf("unknown movement type %q", s)
}

// Entry is one selectable lookup row. HasStock is set for materials,
// where the picker shows the current stock level next to the name.
type Entry struct {
	Name     string          `json:"name"`
	Stock    decimal.Decimal `json:"stock"`
	HasStock bool            `json:"hasStock"`
}

// Lookups holds the entries of all four categories.
type Lookups map[Category][]Entry

// LineItem is one (material, quantity) pair of a document.
//
// A line is valid when its name is non-empty; quantity zero is allowed
// and serialized, since a zero adjustment is meaningful to the backend.
type LineItem struct {
	Name string          `json:"name"`
	Qty  decimal.Decimal `json:"qty"`
}

// Valid reports whether the line carries a material name.
func (l LineItem) Valid() bool {
	return strings.TrimSpace(l.Name) != ""
}

// MovementBatch is the serialized form of an In/Out/Adjust submission.
// DocNo is always assigned by the backend, never by the caller.
type MovementBatch struct {
	Type       MovementType `json:"type"`
	Date       string       `json:"date"`
	Project    string       `json:"project,omitempty"`
	Contractor string       `json:"contractor,omitempty"`
	Requester  string       `json:"requester,omitempty"`
	Note       string       `json:"note,omitempty"`
	Lines      []LineItem   `json:"lines"`
}

// PurchaseRequest is the serialized form of a purchase submission.
type PurchaseRequest struct {
	Date       string     `json:"date"`
	NeedBy     string     `json:"needBy,omitempty"`
	Priority   string     `json:"priority,omitempty"`
	Project    string     `json:"project,omitempty"`
	Contractor string     `json:"contractor,omitempty"`
	Requester  string     `json:"requester,omitempty"`
	Note       string     `json:"note,omitempty"`
	Lines      []LineItem `json:"lines"`
}

// SubmitResult carries the backend-assigned document number.
type SubmitResult struct {
	DocNo string `json:"docNo"`
}

// PurchaseStatus is the purchase request lifecycle state.
type PurchaseStatus string

const (
	StatusRequested PurchaseStatus = "Requested"
	StatusApproved  PurchaseStatus = "Approved"
	StatusOrdered   PurchaseStatus = "Ordered"
	StatusReceived  PurchaseStatus = "Received"
	StatusCancelled PurchaseStatus = "Cancelled"
)

// CanTransition reports whether a purchase may move from to next.
// Forward order is Requested -> Approved -> Ordered -> Received;
// Cancelled is reachable from any non-terminal state.
func CanTransition(from, to PurchaseStatus) bool {
	if from == StatusReceived || from == StatusCancelled {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	switch from {
	case StatusRequested:
		return to == StatusApproved
	case StatusApproved:
		return to == StatusOrdered
	case StatusOrdered:
		return to == StatusReceived
	}
	return false
}

// PurchaseSummary is one row of the purchase history list.
type PurchaseSummary struct {
	DocNo      string         `json:"docNo"`
	Date       string         `json:"date"`
	NeedBy     string         `json:"needBy"`
	Priority   string         `json:"priority"`
	Project    string         `json:"project"`
	Contractor string         `json:"contractor"`
	Requester  string         `json:"requester"`
	Status     PurchaseStatus `json:"status"`
	LineCount  int            `json:"lineCount"`
}

// StatusCount is one slice of the purchase pipeline summary.
type StatusCount struct {
	Status PurchaseStatus `json:"status"`
	Docs   int            `json:"docs"`
}

// ReportFilter selects movements for the report query. Empty fields
// match everything; dates are inclusive YYYY-MM-DD bounds.
type ReportFilter struct {
	From     string
	To       string
	Material string
	Type     MovementType
	Project  string
}

// MovementRow is one reported movement line.
type MovementRow struct {
	DocNo      string          `json:"docNo"`
	Date       string          `json:"date"`
	Type       MovementType    `json:"type"`
	Material   string          `json:"material"`
	Qty        decimal.Decimal `json:"qty"`
	Project    string          `json:"project"`
	Contractor string          `json:"contractor"`
	Requester  string          `json:"requester"`
}

// StockLevel is the current and minimum stock of a material.
type StockLevel struct {
	Stock decimal.Decimal `json:"stock"`
	Min   decimal.Decimal `json:"min"`
}

// MaterialRow is a material with its stock levels, as listed in
// settings and the low-stock dashboard.
type MaterialRow struct {
	Name  string          `json:"name"`
	Stock decimal.Decimal `json:"stock"`
	Min   decimal.Decimal `json:"min"`
}

// ContractorStat is one row of the top-contractors dashboard list.
type ContractorStat struct {
	Name  string `json:"name"`
	Moves int    `json:"moves"`
}

// ItemStat is one row of the top-items dashboard list.
type ItemStat struct {
	Name string          `json:"name"`
	Qty  decimal.Decimal `json:"qty"`
}

// Backend is the persistence boundary. Every form handler depends on
// this interface only; the sqlite document store and the remote script
// endpoint are interchangeable implementations picked at startup.
type Backend interface {
	// Lookups fetches all four categories. Implementations fetch them
	// in one round where they can; callers treat the result as a unit.
	Lookups(ctx context.Context) (Lookups, error)
	CurrentStock(ctx context.Context, material string) (StockLevel, error)

	SubmitMovements(ctx context.Context, batch MovementBatch) (SubmitResult, error)
	SubmitPurchase(ctx context.Context, req PurchaseRequest) (SubmitResult, error)
	SetPurchaseStatus(ctx context.Context, docNo string, status PurchaseStatus) error

	MovementReport(ctx context.Context, filter ReportFilter) ([]MovementRow, error)
	PurchaseSummaries(ctx context.Context) ([]PurchaseSummary, error)
	PurchaseLines(ctx context.Context, docNo string) ([]LineItem, error)
	MovementDoc(ctx context.Context, docNo string) (MovementBatch, error)

	AddEntry(ctx context.Context, category Category, name string) error
	DeleteEntry(ctx context.Context, category Category, name string) error
	SetMaterialLevels(ctx context.Context, name string, level StockLevel) error

	Materials(ctx context.Context) ([]MaterialRow, error)
	PurchasePipeline(ctx context.Context) ([]StatusCount, error)
	LowStock(ctx context.Context, limit int) ([]MaterialRow, error)
	TopContractors(ctx context.Context, days, limit int) ([]ContractorStat, error)
	TopItems(ctx context.Context, days, limit int) ([]ItemStat, error)
	RecentMovements(ctx context.Context, limit int) ([]MovementRow, error)
}
