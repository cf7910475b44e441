package movements

import (
	"stockroom/frontend/shared/html"
	"stockroom/inventory"
)

// TabConfig parameterizes the shared movement form per tab.
type TabConfig struct {
	Type  inventory.MovementType
	Key   string
	Title string

	ShowProject    bool
	ShowContractor bool
	ShowRequester  bool
	// ShowBadge enables the per-row stock indicator (OUT only).
	ShowBadge bool
}

// Tabs lists the three movement tabs in nav order.
var Tabs = []TabConfig{
	{Type: inventory.MovementIn, Key: "in", Title: "Stock In", ShowProject: true, ShowRequester: true},
	{Type: inventory.MovementOut, Key: "out", Title: "Stock Out", ShowProject: true, ShowContractor: true, ShowRequester: true, ShowBadge: true},
	{Type: inventory.MovementAdjust, Key: "adjust", Title: "Adjust Stock", ShowRequester: true},
}

// PageData is everything the movement form renders, including the
// echoed values after a failed submit.
type PageData struct {
	Tab        TabConfig
	Date       string
	Project    string
	Contractor string
	Requester  string
	Note       string
	Lines      []inventory.LineItem
	Flash      html.Flash
}
