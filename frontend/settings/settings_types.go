package settings

import (
	"stockroom/frontend/shared/html"
	"stockroom/inventory"
)

// PageData is the settings page state: all four master-data lists.
type PageData struct {
	Materials   []inventory.MaterialRow
	Projects    []string
	Contractors []string
	Requesters  []string
	Flash       html.Flash
}
