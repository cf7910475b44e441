package purchase

import (
	"stockroom/frontend/shared/html"
	"stockroom/inventory"
)

// Priorities offered on the purchase form, lowest to highest.
var Priorities = []string{"Low", "Normal", "High", "Urgent"}

// PageData is the purchase tab state: the request form (with echoed
// values after a failed submit) plus the history list below it.
type PageData struct {
	Date       string
	NeedBy     string
	Priority   string
	Project    string
	Contractor string
	Requester  string
	Note       string
	Lines      []inventory.LineItem

	History []inventory.PurchaseSummary
	Flash   html.Flash
}

// NextStatuses returns the transitions offered for a history row.
func NextStatuses(current inventory.PurchaseStatus) []inventory.PurchaseStatus {
	all := []inventory.PurchaseStatus{
		inventory.StatusApproved,
		inventory.StatusOrdered,
		inventory.StatusReceived,
		inventory.StatusCancelled,
	}
	out := make([]inventory.PurchaseStatus, 0, len(all))
	for _, s := range all {
		if inventory.CanTransition(current, s) {
			out = append(out, s)
		}
	}
	return out
}
